package routes

import (
	"strings"

	"github.com/vango-dev/routegen/internal/overrides"
	"github.com/vango-dev/routegen/internal/templates"
)

// GenerateRouter rewrites the aggregate router file. Every category with a
// directory contributes its parent route, with its relative routes nested
// under it. Absolute routes are attached to the root route after all
// categories. It reports whether the file content changed.
func (g *Generator) GenerateRouter(table overrides.Table) (bool, error) {
	data := templates.RouterData{Alias: g.cfg.Alias}
	var absolute []string

	for _, cat := range g.cfg.Categories {
		if !isDir(g.cfg.CategoryPath(cat.Name)) {
			continue
		}

		files, resolved, err := g.Resolve(cat, table)
		if err != nil {
			return false, err
		}

		parent := cat.Name + "Route"
		names := []string{parent}
		var nested []string
		for i, f := range files {
			v := RouteVar(f.BaseName)
			names = append(names, v)
			if resolved[i].Absolute {
				absolute = append(absolute, v)
			} else {
				nested = append(nested, v)
			}
		}

		data.Imports = append(data.Imports, templates.RouterImport{
			Names: names,
			Spec:  g.cfg.Alias + "/" + cat.Name,
		})
		if len(nested) > 0 {
			data.Children = append(data.Children, parent+".addChildren(["+strings.Join(nested, ", ")+"])")
		} else {
			data.Children = append(data.Children, parent)
		}
	}
	data.Children = append(data.Children, absolute...)

	content, err := templates.Router(data)
	if err != nil {
		return false, err
	}
	return writeIfChanged(g.cfg.RouterPath(), content)
}
