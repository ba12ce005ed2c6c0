package routes

import (
	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/overrides"
)

// CheckReport is the read-only view of a project's routes.
type CheckReport struct {
	// Categories are the categories with a directory, in configured order.
	Categories []CategoryReport `json:"categories"`

	// Stale lists override keys whose route file does not exist, sorted.
	Stale []string `json:"stale,omitempty"`

	// Warnings are the override table diagnostics.
	Warnings []*errors.Error `json:"-"`
}

// Check resolves every route against the override table as it is on disk.
// Nothing is written.
func (rb *Rebuilder) Check() (*CheckReport, error) {
	files, err := rb.gen.Discover()
	if err != nil {
		return nil, err
	}

	table, warnings := rb.store.Load()
	report := &CheckReport{
		Stale:    overrides.Stale(table, Keys(files)),
		Warnings: warnings,
	}

	for _, cat := range rb.cfg.Categories {
		if !isDir(rb.cfg.CategoryPath(cat.Name)) {
			continue
		}
		_, resolved, err := rb.gen.Resolve(cat, table)
		if err != nil {
			return nil, err
		}
		report.Categories = append(report.Categories, CategoryReport{
			Name:     cat.Name,
			BasePath: cat.BasePath,
			Routes:   resolved,
		})
	}
	return report, nil
}
