package routes

import (
	"strings"

	"github.com/vango-dev/routegen/internal/overrides"
)

// Resolved is the final URL segment of a route file.
type Resolved struct {
	// Key is the override table key.
	Key string `json:"key"`

	// Category is the category of the file.
	Category string `json:"category"`

	// File is the path of the file relative to its category directory.
	File string `json:"file"`

	// Path is the child path written into the route definition.
	Path string `json:"path"`

	// Absolute routes hang off the root route instead of their category.
	Absolute bool `json:"absolute"`

	// Overridden is set when an override entry supplied Path.
	Overridden bool `json:"overridden"`

	// URL is the full URL the route answers to.
	URL string `json:"url"`
}

// Derive computes the route path of file. entry is the override entry for
// the file's key, or nil. home names the category whose routes are always
// rooted.
func Derive(file RouteFile, entry *overrides.Entry, home string) Resolved {
	isHome := file.Category == home

	var (
		path       string
		overridden bool
	)
	if entry != nil && entry.Override {
		path = entry.Path
		overridden = true
	} else {
		path = file.DefaultPath()
	}

	absolute := overridden && strings.HasPrefix(path, "/") && !isHome

	switch {
	case isHome:
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
	case !absolute:
		if path != "/" && strings.HasPrefix(path, "/") {
			path = path[1:]
		}
	}

	return Resolved{
		Key:        file.Key(),
		Category:   file.Category,
		File:       file.Rel,
		Path:       path,
		Absolute:   absolute,
		Overridden: overridden,
	}
}

// WithURL returns r with URL set for a category mounted at basePath.
func (r Resolved) WithURL(basePath string, home bool) Resolved {
	switch {
	case r.Absolute, home:
		r.URL = JoinURL("/", r.Path)
	default:
		r.URL = JoinURL(basePath, r.Path)
	}
	return r
}
