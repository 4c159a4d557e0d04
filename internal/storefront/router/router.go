// Package router maps storefront paths to pages and runs navigation guards
// before a navigation is committed.
package router

import (
	"context"
	"fmt"
	"net/url"
	"sync"
)

// MaxRedirects bounds guard redirect chains.
const MaxRedirects = 10

// Decision is a guard's verdict on one navigation attempt.
type Decision struct {
	// Redirect names the route to go to instead. Empty allows the navigation.
	Redirect string
	Query    url.Values
}

func Allow() Decision { return Decision{} }

func RedirectTo(name string, query url.Values) Decision {
	return Decision{Redirect: name, Query: query}
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

// GuardFunc runs before every navigation, including redirects.
type GuardFunc func(ctx context.Context, to Route, loc Location) Decision

type Router struct {
	routes []Route
	guards []GuardFunc

	mu      sync.Mutex
	current Location
}

// New builds a router. Guards run in the given order; the first redirect wins.
func New(routes []Route, guards ...GuardFunc) *Router {
	return &Router{routes: routes, guards: guards}
}

// Routes returns a copy of the route table.
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.routes...)
}

// Resolve matches a path (with optional query string) against the table.
func (r *Router) Resolve(fullPath string) (Route, Location, error) {
	u, err := url.Parse(fullPath)
	if err != nil {
		return Route{}, Location{}, fmt.Errorf("router: invalid path %q: %w", fullPath, err)
	}

	path := u.Path
	if path == "" {
		path = "/"
	}

	for _, route := range r.routes {
		if params, ok := match(route.Path, path); ok {
			return route, newLocation(route.Name, path, params, u.Query()), nil
		}
	}

	return Route{}, Location{}, fmt.Errorf("%w: %s", ErrRouteNotFound, path)
}

// ResolveNamed builds the location of a named route.
func (r *Router) ResolveNamed(name string, params map[string]string, query url.Values) (Route, Location, error) {
	for _, route := range r.routes {
		if route.Name != name {
			continue
		}
		path, err := build(route.Path, params)
		if err != nil {
			return Route{}, Location{}, err
		}
		if query == nil {
			query = url.Values{}
		}
		return route, newLocation(name, path, params, query), nil
	}
	return Route{}, Location{}, fmt.Errorf("%w: named %q", ErrRouteNotFound, name)
}

// Push navigates to fullPath. Guards may redirect; the location finally
// committed is returned and becomes Current.
func (r *Router) Push(ctx context.Context, fullPath string) (Location, error) {
	route, loc, err := r.Resolve(fullPath)
	if err != nil {
		return Location{}, err
	}

	for hops := 0; ; hops++ {
		if hops > MaxRedirects {
			return Location{}, fmt.Errorf("%w: last target %s", ErrTooManyRedirects, loc.FullPath)
		}

		decision := r.runGuards(ctx, route, loc)
		if decision.Allowed() {
			r.mu.Lock()
			r.current = loc
			r.mu.Unlock()
			return loc, nil
		}

		route, loc, err = r.ResolveNamed(decision.Redirect, nil, decision.Query)
		if err != nil {
			return Location{}, err
		}
	}
}

// Current is the last committed location.
func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Router) runGuards(ctx context.Context, to Route, loc Location) Decision {
	for _, guard := range r.guards {
		if d := guard(ctx, to, loc); !d.Allowed() {
			return d
		}
	}
	return Allow()
}
