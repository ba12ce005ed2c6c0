package routes

import (
	"path/filepath"
	"strings"

	"github.com/vango-dev/routegen/internal/overrides"
)

// RouteFile is a route component discovered below a category directory.
type RouteFile struct {
	// Category is the category directory name.
	Category string

	// BaseName is the file name without extension.
	BaseName string

	// Segments are the lower-cased path segments between the category
	// directory and the file, extension stripped.
	Segments []string

	// Path is the absolute file path.
	Path string

	// Rel is the slash-separated path relative to the category directory.
	Rel string
}

// NewRouteFile builds the RouteFile of path, a file with extension ext below
// categoryDir.
func NewRouteFile(category, categoryDir, path, ext string) (RouteFile, error) {
	rel, err := filepath.Rel(categoryDir, path)
	if err != nil {
		return RouteFile{}, err
	}
	rel = filepath.ToSlash(rel)

	var segments []string
	for _, seg := range strings.Split(strings.TrimSuffix(rel, ext), "/") {
		if seg != "" {
			segments = append(segments, strings.ToLower(seg))
		}
	}

	return RouteFile{
		Category: category,
		BaseName: strings.TrimSuffix(filepath.Base(path), ext),
		Segments: segments,
		Path:     path,
		Rel:      rel,
	}, nil
}

// Key returns the override table key of the file.
func (f RouteFile) Key() string {
	return overrides.Key(f.Category, f.BaseName)
}

// DefaultPath returns the file-system-derived URL segment.
func (f RouteFile) DefaultPath() string {
	if len(f.Segments) == 0 {
		return "/"
	}
	return strings.Join(f.Segments, "/")
}

// ImportSpec returns the specifier used to import the file from its
// category index.
func (f RouteFile) ImportSpec() string {
	return "./" + strings.TrimSuffix(f.Rel, filepath.Ext(f.Rel))
}

// Keys returns the table keys of files, in order, without duplicates.
func Keys(files []RouteFile) []string {
	seen := make(map[string]bool, len(files))
	keys := make([]string, 0, len(files))
	for _, f := range files {
		k := f.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}
