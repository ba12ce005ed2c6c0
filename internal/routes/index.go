package routes

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vango-dev/routegen/internal/config"
	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/overrides"
	"github.com/vango-dev/routegen/internal/templates"
)

// Generator writes the category index files and the router file of a
// project.
type Generator struct {
	cfg     *config.Config
	scanner *Scanner
	logger  *slog.Logger
}

// NewGenerator creates a generator for the project described by cfg.
func NewGenerator(cfg *config.Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		cfg: cfg,
		scanner: NewScanner(ScannerOptions{
			Root:      cfg.RoutesPath(),
			Extension: cfg.Extension,
			Index:     cfg.Index,
			Ignore:    cfg.Ignore,
		}),
		logger: logger,
	}
}

// Scanner returns the scanner used for every category.
func (g *Generator) Scanner() *Scanner {
	return g.scanner
}

// Discover returns the route files of every category, in category order.
func (g *Generator) Discover() ([]RouteFile, error) {
	var all []RouteFile
	for _, cat := range g.cfg.Categories {
		files, err := g.scanner.Scan(cat.Name)
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
	}
	return all, nil
}

// Resolve derives the route of every file of a category, in scan order.
func (g *Generator) Resolve(cat config.Category, table overrides.Table) ([]RouteFile, []Resolved, error) {
	files, err := g.scanner.Scan(cat.Name)
	if err != nil {
		return nil, nil, err
	}

	home := cat.Name == g.cfg.Home
	resolved := make([]Resolved, 0, len(files))
	for _, f := range files {
		r := Derive(f, table.Lookup(f.Key()), g.cfg.Home).WithURL(cat.BasePath, home)
		resolved = append(resolved, r)
	}
	return files, resolved, nil
}

// GenerateIndex regenerates the generated region of a category's index
// file. It reports whether the file content changed. Categories without a
// directory are skipped.
func (g *Generator) GenerateIndex(cat config.Category, table overrides.Table) ([]Resolved, bool, error) {
	dir := g.cfg.CategoryPath(cat.Name)
	if !isDir(dir) {
		g.logger.Debug("category directory missing", "category", cat.Name, "dir", dir)
		return nil, false, nil
	}

	files, resolved, err := g.Resolve(cat, table)
	if err != nil {
		return nil, false, err
	}

	data := templates.IndexData{
		Alias:    g.cfg.Alias,
		Category: cat.Name,
		BasePath: cat.BasePath,
		Home:     cat.Name == g.cfg.Home,
	}
	for i, f := range files {
		r := resolved[i]
		component := ComponentName(f.BaseName)
		parent := cat.Name + "Route"
		if r.Absolute {
			parent = "rootRoute"
		}

		data.Imports = append(data.Imports, templates.Import{Name: component, Spec: f.ImportSpec()})
		data.Routes = append(data.Routes, templates.RouteDef{
			Var:       RouteVar(f.BaseName),
			Parent:    parent,
			Path:      r.Path,
			Component: component,
		})

		g.logger.Info("route",
			"category", cat.Name,
			"file", f.Rel,
			"key", r.Key,
			"path", r.Path,
			"override", r.Overridden,
			"absolute", r.Absolute,
		)
	}

	region, err := templates.IndexRegion(data)
	if err != nil {
		return nil, false, err
	}

	indexPath := filepath.Join(dir, g.cfg.Index)
	existing, err := os.ReadFile(indexPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, false, errors.New("R110").
			WithDetail("Could not read " + indexPath).
			Wrap(err)
	}

	content := ParseDocument(string(existing)).Splice(region)
	changed, err := writeIfChanged(indexPath, []byte(content))
	if err != nil {
		return nil, false, err
	}
	return resolved, changed, nil
}

// writeIfChanged writes content to path unless the file already holds it.
func writeIfChanged(path string, content []byte) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, content) {
		return false, nil
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return false, errors.New("R110").
			WithDetail("Could not write " + path).
			Wrap(err)
	}
	return true, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
