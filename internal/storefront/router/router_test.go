package router_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/aussiebroadwan/storefront/internal/storefront/router"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	r := router.New(router.DefaultRoutes())

	tests := []struct {
		name     string
		in       string
		wantName string
		wantPath string
		params   map[string]string
	}{
		{name: "root", in: "/", wantName: router.RouteHome, wantPath: "/"},
		{name: "empty is root", in: "", wantName: router.RouteHome, wantPath: "/"},
		{name: "static", in: "/catalog", wantName: router.RouteCatalog, wantPath: "/catalog"},
		{name: "trailing slash", in: "/cart/", wantName: router.RouteCart, wantPath: "/cart/"},
		{name: "param", in: "/product/42", wantName: router.RouteProductDetails, wantPath: "/product/42", params: map[string]string{"id": "42"}},
		{name: "escaped param", in: "/product/a%20b", wantName: router.RouteProductDetails, wantPath: "/product/a b", params: map[string]string{"id": "a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, loc, err := r.Resolve(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.wantName, route.Name)
			require.Equal(t, tt.wantName, loc.Name)
			require.Equal(t, tt.wantPath, loc.Path)
			for k, v := range tt.params {
				require.Equal(t, v, loc.Params[k])
			}
		})
	}
}

func TestResolveKeepsQuery(t *testing.T) {
	t.Parallel()

	r := router.New(router.DefaultRoutes())
	_, loc, err := r.Resolve("/catalog?page=2&sort=price")
	require.NoError(t, err)
	require.Equal(t, "2", loc.Query.Get("page"))
	require.Equal(t, "/catalog?page=2&sort=price", loc.FullPath)
}

func TestResolveUnknown(t *testing.T) {
	t.Parallel()

	r := router.New(router.DefaultRoutes())
	for _, p := range []string{"/nope", "/product", "/product/1/reviews"} {
		_, _, err := r.Resolve(p)
		require.ErrorIs(t, err, router.ErrRouteNotFound, p)
	}
}

func TestResolveNamed(t *testing.T) {
	t.Parallel()

	r := router.New(router.DefaultRoutes())

	_, loc, err := r.ResolveNamed(router.RouteLogin, nil, url.Values{"redirect": {"/cart"}})
	require.NoError(t, err)
	require.Equal(t, "/login", loc.Path)
	require.Equal(t, "/login?redirect=%2Fcart", loc.FullPath)

	_, loc, err = r.ResolveNamed(router.RouteProductDetails, map[string]string{"id": "7"}, nil)
	require.NoError(t, err)
	require.Equal(t, "/product/7", loc.Path)

	_, _, err = r.ResolveNamed(router.RouteProductDetails, nil, nil)
	require.ErrorIs(t, err, router.ErrMissingParam)

	_, _, err = r.ResolveNamed("Nowhere", nil, nil)
	require.ErrorIs(t, err, router.ErrRouteNotFound)
}

func TestDefaultRoutesFlags(t *testing.T) {
	t.Parallel()

	flags := map[string][2]bool{}
	for _, route := range router.DefaultRoutes() {
		flags[route.Name] = [2]bool{route.RequiresAuth, route.RequiresAdmin}
	}

	require.Len(t, flags, 10)
	require.Equal(t, [2]bool{true, false}, flags[router.RouteProfile])
	require.Equal(t, [2]bool{true, false}, flags[router.RouteCart])
	require.Equal(t, [2]bool{true, false}, flags[router.RouteOrders])
	require.Equal(t, [2]bool{true, true}, flags[router.RouteAdminDashboard])
	require.Equal(t, [2]bool{false, false}, flags[router.RouteHome])
	require.Equal(t, [2]bool{false, false}, flags[router.RouteLogin])
}

func TestPushFollowsRedirects(t *testing.T) {
	t.Parallel()

	var visited []string
	guard := func(_ context.Context, to router.Route, loc router.Location) router.Decision {
		visited = append(visited, loc.FullPath)
		if to.RequiresAuth {
			return router.RedirectTo(router.RouteLogin, url.Values{"redirect": {loc.FullPath}})
		}
		return router.Allow()
	}

	r := router.New(router.DefaultRoutes(), guard)
	loc, err := r.Push(context.Background(), "/orders")
	require.NoError(t, err)

	require.Equal(t, router.RouteLogin, loc.Name)
	require.Equal(t, "/orders", loc.Query.Get("redirect"))
	require.Equal(t, []string{"/orders", "/login?redirect=%2Forders"}, visited)
	require.Equal(t, loc, r.Current())
}

func TestPushGuardOrder(t *testing.T) {
	t.Parallel()

	var calls []string
	first := func(context.Context, router.Route, router.Location) router.Decision {
		calls = append(calls, "first")
		return router.RedirectTo(router.RouteAbout, nil)
	}
	second := func(context.Context, router.Route, router.Location) router.Decision {
		calls = append(calls, "second")
		return router.Allow()
	}

	r := router.New(router.DefaultRoutes(), first, second)
	_, err := r.Push(context.Background(), "/")

	// first always redirects, so the chain never settles.
	require.ErrorIs(t, err, router.ErrTooManyRedirects)
	require.NotContains(t, calls, "second")
}

func TestPushUnknownRouteKeepsCurrent(t *testing.T) {
	t.Parallel()

	r := router.New(router.DefaultRoutes())
	_, err := r.Push(context.Background(), "/about")
	require.NoError(t, err)

	_, err = r.Push(context.Background(), "/missing")
	require.ErrorIs(t, err, router.ErrRouteNotFound)
	require.Equal(t, "/about", r.Current().Path)
}
