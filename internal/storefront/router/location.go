package router

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrRouteNotFound    = errors.New("router: no route matches")
	ErrMissingParam     = errors.New("router: missing route param")
	ErrTooManyRedirects = errors.New("router: too many redirects")
)

// Location is a resolved navigation target.
type Location struct {
	Name     string
	Path     string
	FullPath string // path plus query string
	Params   map[string]string
	Query    url.Values
}

func newLocation(name, path string, params map[string]string, query url.Values) Location {
	full := path
	if encoded := query.Encode(); encoded != "" {
		full += "?" + encoded
	}
	return Location{
		Name:     name,
		Path:     path,
		FullPath: full,
		Params:   params,
		Query:    query,
	}
}

// match reports whether path fits pattern, collecting :param segments.
func match(pattern, path string) (map[string]string, bool) {
	want := splitPath(pattern)
	got := splitPath(path)
	if len(want) != len(got) {
		return nil, false
	}

	params := map[string]string{}
	for i, seg := range want {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			if got[i] == "" {
				return nil, false
			}
			value, err := url.PathUnescape(got[i])
			if err != nil {
				return nil, false
			}
			params[name] = value
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}

// build fills the :param segments of pattern.
func build(pattern string, params map[string]string) (string, error) {
	segs := splitPath(pattern)
	for i, seg := range segs {
		name, ok := strings.CutPrefix(seg, ":")
		if !ok {
			continue
		}
		value, ok := params[name]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %s", ErrMissingParam, name)
		}
		segs[i] = url.PathEscape(value)
	}
	return "/" + strings.Join(segs, "/"), nil
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
