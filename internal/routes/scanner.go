package routes

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"

	"github.com/vango-dev/routegen/internal/errors"
)

// Scanner lists route component files.
type Scanner struct {
	root      string
	extension string
	index     string
	ignore    gitignore.GitIgnore
}

// ScannerOptions configures a Scanner.
type ScannerOptions struct {
	// Root is the routes root. Ignore patterns are relative to it.
	Root string

	// Extension is the component file extension, with leading dot.
	Extension string

	// Index is the category index file name, never listed.
	Index string

	// Ignore contains gitignore-style patterns.
	Ignore []string
}

// NewScanner creates a scanner for the routes root.
func NewScanner(opts ScannerOptions) *Scanner {
	s := &Scanner{
		root:      opts.Root,
		extension: opts.Extension,
		index:     opts.Index,
	}
	if len(opts.Ignore) > 0 {
		s.ignore = gitignore.New(strings.NewReader(strings.Join(opts.Ignore, "\n")), opts.Root, nil)
	}
	return s
}

// ListFiles returns the component files below dir, depth first, in directory
// read order. A missing directory has no files.
func (s *Scanner) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.New("R111").
			WithDetail("Could not read " + dir).
			Wrap(err)
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		isDir := entry.IsDir()
		if !isDir && entry.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil {
				isDir = info.IsDir()
			}
		}

		if s.ignored(path, isDir) {
			continue
		}

		if isDir {
			nested, err := s.ListFiles(path)
			if err != nil {
				return nil, err
			}
			files = append(files, nested...)
			continue
		}

		if strings.HasSuffix(entry.Name(), s.extension) && entry.Name() != s.index {
			files = append(files, path)
		}
	}
	return files, nil
}

// Scan returns the route files of a category.
func (s *Scanner) Scan(category string) ([]RouteFile, error) {
	dir := filepath.Join(s.root, category)
	paths, err := s.ListFiles(dir)
	if err != nil {
		return nil, err
	}

	files := make([]RouteFile, 0, len(paths))
	for _, path := range paths {
		f, err := NewRouteFile(category, dir, path, s.extension)
		if err != nil {
			return nil, errors.New("R111").Wrap(err)
		}
		files = append(files, f)
	}
	return files, nil
}

// Matches reports whether path is a route component the scanner would list.
// Files of a category's index, ignored paths and other extensions do not
// match.
func (s *Scanner) Matches(path string) bool {
	name := filepath.Base(path)
	if !strings.HasSuffix(name, s.extension) || name == s.index {
		return false
	}
	return !s.ignored(path, false)
}

func (s *Scanner) ignored(path string, isDir bool) bool {
	if s.ignore == nil {
		return false
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if match := s.ignore.Relative(rel, isDir); match != nil && match.Ignore() {
		return true
	}
	// A file below an ignored directory is ignored too.
	for dir := pathDir(rel); dir != ""; dir = pathDir(dir) {
		if match := s.ignore.Relative(dir, true); match != nil && match.Ignore() {
			return true
		}
	}
	return false
}

func pathDir(rel string) string {
	i := strings.LastIndex(rel, "/")
	if i < 0 {
		return ""
	}
	return rel[:i]
}
