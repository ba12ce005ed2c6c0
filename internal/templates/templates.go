package templates

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/vango-dev/routegen/internal/errors"
)

// Region markers delimiting the generated part of an index file.
const (
	RegionStart = "// === AUTO-GENERATED ROUTES START ==="
	RegionEnd   = "// === AUTO-GENERATED ROUTES END ==="
)

var funcs = template.FuncMap{
	"join":  strings.Join,
	"entry": EntryLine,
	"str":   EscapeString,
}

// TableEntry is one default line of a fresh override table.
type TableEntry struct {
	Key  string
	Path string
}

// TableGroup is the banner-delimited block of one category.
type TableGroup struct {
	Label   string
	Entries []TableEntry
}

// OverrideTableData feeds the fresh override table.
type OverrideTableData struct {
	// Extension is the route component extension named in the header.
	Extension string

	// Groups are the non-empty categories, in configured order.
	Groups []TableGroup
}

// Import is a default import of a route component.
type Import struct {
	Name string
	Spec string
}

// RouteDef is one generated child route.
type RouteDef struct {
	Var       string
	Parent    string
	Path      string
	Component string
}

// IndexData feeds the generated region of a category index file.
type IndexData struct {
	// Alias is the import specifier of the routes root.
	Alias string

	Category string
	BasePath string

	// Home selects the pathless parent form.
	Home bool

	Imports []Import
	Routes  []RouteDef
}

// RouterImport is a named import from one category index.
type RouterImport struct {
	Names []string
	Spec  string
}

// RouterData feeds the aggregate router file.
type RouterData struct {
	// Alias is the import specifier of the routes root.
	Alias string

	Imports []RouterImport

	// Children are the expressions passed to rootRoute.addChildren.
	Children []string
}

const overrideTableSource = `/**
 * Key = "<category>/<fileName>" (file name without the {{.Extension}} extension)
 * Example: "protected/dashboard" => route defined in protected/dashboard{{.Extension}}
 *
 * PATH RULES:
 *
 * 1. RELATIVE path (no leading "/"):
 *    Appended to the base path of the category.
 *    Example: "auth/login": { path: "login" } => final URL /auth/login
 *
 * 2. ABSOLUTE path (leading "/"):
 *    Ignores the base path of the category.
 *    Example: "auth/login": { path: "/login" } => final URL /login (not /auth/login)
 *
 * 3. Path "/": index route of the category.
 *
 * THE override PROPERTY:
 * - false (default): the file layout decides the path, "path" is ignored
 * - true: the custom "path" defined here is used
 *
 * This file is AUTO-GENERATED but your edits are preserved:
 * - new routes are added with override: false
 * - deleted routes are removed
 * - your overrides are kept as written
 *
 * WARNING: if you delete this file it is recreated from the file layout
 * and ALL of your custom overrides are lost.
 */
export const routeConfig: Record<string, { path?: string; override?: boolean }> = {
{{range .Groups}}  // ------------------------------
  // {{.Label}}
  // ------------------------------
{{range .Entries}}{{entry .Key .Path}}
{{end}}
{{end}}  // Custom override examples:
  // "protected/settings": { path: "account/settings", override: true }, // => /app/account/settings
  // "public/about": { path: "/about-us", override: true }, // => /about-us (absolute)
}
`

const indexRegionSource = `{{.Start}}

import { createRoute } from '@tanstack/react-router'
import { rootRoute } from '{{.Alias}}/root'
{{range .Imports}}import {{.Name}} from '{{str .Spec}}'
{{end}}
export const {{.Category}}Route = createRoute({
  getParentRoute: () => rootRoute,
{{if .Home}}  id: '_{{.Category}}',
{{else}}  path: '{{str .BasePath}}',
{{end}}})

{{range .Routes}}export const {{.Var}} = createRoute({
  getParentRoute: () => {{.Parent}},
  path: '{{str .Path}}',
  component: {{.Component}},
})
{{end}}
{{.End}}`

const routerSource = `import { createRouter } from '@tanstack/react-router'
import { rootRoute } from '{{.Alias}}/root'
{{range .Imports}}import { {{join .Names ", "}} } from '{{str .Spec}}'
{{end}}
export const routeTree = rootRoute.addChildren([
  {{join .Children ",\n  "}}
])

export const router = createRouter({ routeTree })

declare module '@tanstack/react-router' {
  interface Register {
    router: typeof router
  }
}
`

const placeholderSource = `export default function {{.}}() {
  return <div>{{.}}</div>
}
`

var (
	overrideTableTmpl = template.Must(template.New("route.config.ts").Funcs(funcs).Parse(overrideTableSource))
	indexRegionTmpl   = template.Must(template.New("index region").Funcs(funcs).Parse(indexRegionSource))
	routerTmpl        = template.Must(template.New("router.ts").Funcs(funcs).Parse(routerSource))
	placeholderTmpl   = template.Must(template.New("placeholder").Parse(placeholderSource))
)

// EntryLine renders a default override entry line.
func EntryLine(key, path string) string {
	return fmt.Sprintf(`  "%s": { path: "%s", override: false },`, EscapeString(key), EscapeString(path))
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `'`, `\'`)

// EscapeString escapes s for use inside a single- or double-quoted
// TypeScript string literal.
func EscapeString(s string) string {
	return stringEscaper.Replace(s)
}

// UnescapeString reverses EscapeString. A backslash always takes the next
// character literally.
func UnescapeString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// AddedEntryLine renders an entry line appended to an existing table.
func AddedEntryLine(key, path string) string {
	return EntryLine(key, path) + " // auto-added"
}

// AddedGroupComment renders the comment heading a block of appended entries.
func AddedGroupComment(category string) string {
	return "  // New " + category + " routes"
}

// OverrideTable renders a fresh override table.
func OverrideTable(data OverrideTableData) ([]byte, error) {
	return render(overrideTableTmpl, data)
}

// IndexRegion renders the generated region of a category index file,
// markers included.
func IndexRegion(data IndexData) (string, error) {
	out, err := render(indexRegionTmpl, struct {
		IndexData
		Start, End string
	}{data, RegionStart, RegionEnd})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Router renders the aggregate router file.
func Router(data RouterData) ([]byte, error) {
	return render(routerTmpl, data)
}

// Placeholder renders the body written into an empty route component.
func Placeholder(component string) ([]byte, error) {
	return render(placeholderTmpl, component)
}

func render(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, errors.New("R112").
			WithDetail("Rendering " + t.Name() + " failed").
			Wrap(err)
	}
	return buf.Bytes(), nil
}

// ScaffoldData contains scaffold configuration.
type ScaffoldData struct {
	// Routes is the routes root, relative to the project.
	Routes string

	// Home is the home category.
	Home string
}

// Scaffold represents a set of starter files.
type Scaffold struct {
	// Name is the scaffold name.
	Name string

	// Files maps relative paths to file templates. Paths are templates too.
	Files map[string]string
}

// Starter returns the scaffold written by "routegen init".
func Starter() *Scaffold {
	return &Scaffold{
		Name: "starter",
		Files: map[string]string{
			"{{.Routes}}/root.tsx": `import { createRootRoute, Outlet } from '@tanstack/react-router'

export const rootRoute = createRootRoute({
  component: () => <Outlet />,
})
`,
			"{{.Routes}}/{{.Home}}/home.tsx": `export default function Home() {
  return <div>Home</div>
}
`,
		},
	}
}

// Create writes the scaffold files under dir. Existing files are left
// untouched. It returns the relative paths written, sorted.
func (s *Scaffold) Create(dir string, data ScaffoldData) ([]string, error) {
	var created []string
	for pathTmpl, content := range s.Files {
		relPath, err := execute(pathTmpl, pathTmpl, data)
		if err != nil {
			return nil, err
		}
		body, err := execute(relPath, content, data)
		if err != nil {
			return nil, err
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if _, err := os.Stat(fullPath); err == nil {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return nil, errors.New("R110").Wrap(err)
		}
		if err := os.WriteFile(fullPath, []byte(body), 0644); err != nil {
			return nil, errors.New("R110").Wrap(err)
		}
		created = append(created, relPath)
	}
	sort.Strings(created)
	return created, nil
}

func execute(name, source string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(source)
	if err != nil {
		return "", errors.New("R112").
			WithDetail("Invalid template " + name).
			Wrap(err)
	}
	out, err := render(tmpl, data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
