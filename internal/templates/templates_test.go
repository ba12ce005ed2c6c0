package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOverrideTable(t *testing.T) {
	out, err := OverrideTable(OverrideTableData{
		Extension: ".tsx",
		Groups: []TableGroup{
			{Label: "Public routes", Entries: []TableEntry{{Key: "public/home", Path: "/"}}},
			{Label: "Auth routes", Entries: []TableEntry{
				{Key: "auth/login", Path: "login"},
				{Key: "auth/register", Path: "register"},
			}},
		},
	})
	if err != nil {
		t.Fatalf("OverrideTable error: %v", err)
	}

	content := string(out)
	wantBlock := `  // ------------------------------
  // Auth routes
  // ------------------------------
  "auth/login": { path: "login", override: false },
  "auth/register": { path: "register", override: false },

`
	if !strings.Contains(content, wantBlock) {
		t.Errorf("missing auth block in:\n%s", content)
	}
	if !strings.Contains(content, `  "public/home": { path: "/", override: false },`) {
		t.Error("missing home entry")
	}
	if !strings.Contains(content, "export const routeConfig: Record<string, { path?: string; override?: boolean }> = {\n") {
		t.Error("missing table declaration")
	}
	if !strings.HasSuffix(content, "\n}\n") {
		t.Errorf("table should end with a closing brace line, got %q", content[len(content)-20:])
	}
	if len(content) < 100 {
		t.Errorf("fresh table is %d bytes, readers treat < 100 as corrupted", len(content))
	}
}

func TestIndexRegion(t *testing.T) {
	region, err := IndexRegion(IndexData{
		Alias:    "@/routes",
		Category: "auth",
		BasePath: "/auth",
		Imports:  []Import{{Name: "Login", Spec: "./login"}, {Name: "Me", Spec: "./account/me"}},
		Routes: []RouteDef{
			{Var: "loginRoute", Parent: "authRoute", Path: "login", Component: "Login"},
			{Var: "meRoute", Parent: "rootRoute", Path: "/me", Component: "Me"},
		},
	})
	if err != nil {
		t.Fatalf("IndexRegion error: %v", err)
	}

	want := `// === AUTO-GENERATED ROUTES START ===

import { createRoute } from '@tanstack/react-router'
import { rootRoute } from '@/routes/root'
import Login from './login'
import Me from './account/me'

export const authRoute = createRoute({
  getParentRoute: () => rootRoute,
  path: '/auth',
})

export const loginRoute = createRoute({
  getParentRoute: () => authRoute,
  path: 'login',
  component: Login,
})
export const meRoute = createRoute({
  getParentRoute: () => rootRoute,
  path: '/me',
  component: Me,
})

// === AUTO-GENERATED ROUTES END ===`

	if region != want {
		t.Errorf("IndexRegion mismatch.\ngot:\n%s\nwant:\n%s", region, want)
	}
}

func TestIndexRegion_Home(t *testing.T) {
	region, err := IndexRegion(IndexData{Alias: "@/routes", Category: "public", BasePath: "/", Home: true})
	if err != nil {
		t.Fatalf("IndexRegion error: %v", err)
	}
	if !strings.Contains(region, "  id: '_public',\n})") {
		t.Errorf("home parent should be pathless:\n%s", region)
	}
	if strings.Contains(region, "path: '/'") {
		t.Errorf("home parent should not carry a path:\n%s", region)
	}
	if !strings.HasPrefix(region, RegionStart) || !strings.HasSuffix(region, RegionEnd) {
		t.Error("region should be delimited by the markers")
	}
}

func TestRouter(t *testing.T) {
	out, err := Router(RouterData{
		Alias: "@/routes",
		Imports: []RouterImport{
			{Names: []string{"publicRoute", "homeRoute"}, Spec: "@/routes/public"},
			{Names: []string{"authRoute", "loginRoute"}, Spec: "@/routes/auth"},
		},
		Children: []string{"publicRoute.addChildren([homeRoute])", "authRoute", "loginRoute"},
	})
	if err != nil {
		t.Fatalf("Router error: %v", err)
	}

	want := `import { createRouter } from '@tanstack/react-router'
import { rootRoute } from '@/routes/root'
import { publicRoute, homeRoute } from '@/routes/public'
import { authRoute, loginRoute } from '@/routes/auth'

export const routeTree = rootRoute.addChildren([
  publicRoute.addChildren([homeRoute]),
  authRoute,
  loginRoute
])

export const router = createRouter({ routeTree })

declare module '@tanstack/react-router' {
  interface Register {
    router: typeof router
  }
}
`
	if string(out) != want {
		t.Errorf("Router mismatch.\ngot:\n%s\nwant:\n%s", out, want)
	}
}

func TestPlaceholder(t *testing.T) {
	out, err := Placeholder("UserParam")
	if err != nil {
		t.Fatal(err)
	}
	want := "export default function UserParam() {\n  return <div>UserParam</div>\n}\n"
	if string(out) != want {
		t.Errorf("Placeholder = %q, want %q", out, want)
	}
}

func TestEntryLines(t *testing.T) {
	if got := AddedEntryLine("auth/login", "login"); got != `  "auth/login": { path: "login", override: false }, // auto-added` {
		t.Errorf("AddedEntryLine = %q", got)
	}
	if got := AddedGroupComment("auth"); got != "  // New auth routes" {
		t.Errorf("AddedGroupComment = %q", got)
	}
}

func TestEscapeString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"login", "login"},
		{`a"b`, `a\"b`},
		{"it's", `it\'s`},
		{`back\slash`, `back\\slash`},
		{`\"`, `\\\"`},
	}
	for _, tt := range tests {
		got := EscapeString(tt.in)
		if got != tt.want {
			t.Errorf("EscapeString(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if back := UnescapeString(got); back != tt.in {
			t.Errorf("UnescapeString(%q) = %q, want %q", got, back, tt.in)
		}
	}

	if got := EntryLine(`auth/a"b`, `a"b`); got != `  "auth/a\"b": { path: "a\"b", override: false },` {
		t.Errorf("EntryLine = %q", got)
	}
}

func TestStarter_Create(t *testing.T) {
	tmpDir := t.TempDir()
	data := ScaffoldData{Routes: "src/routes", Home: "public"}

	created, err := Starter().Create(tmpDir, data)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("created = %v, want 2 files", created)
	}

	rootFile := filepath.Join(tmpDir, "src", "routes", "root.tsx")
	content, err := os.ReadFile(rootFile)
	if err != nil {
		t.Fatalf("root.tsx not created: %v", err)
	}
	if !strings.Contains(string(content), "export const rootRoute = createRootRoute(") {
		t.Errorf("root.tsx content = %q", content)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "src", "routes", "public", "home.tsx")); err != nil {
		t.Errorf("home.tsx not created: %v", err)
	}
}

func TestStarter_CreateKeepsExisting(t *testing.T) {
	tmpDir := t.TempDir()
	rootFile := filepath.Join(tmpDir, "src", "routes", "root.tsx")
	if err := os.MkdirAll(filepath.Dir(rootFile), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(rootFile, []byte("// mine\n"), 0644); err != nil {
		t.Fatal(err)
	}

	created, err := Starter().Create(tmpDir, ScaffoldData{Routes: "src/routes", Home: "public"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if len(created) != 1 || created[0] != "src/routes/public/home.tsx" {
		t.Errorf("created = %v", created)
	}

	content, _ := os.ReadFile(rootFile)
	if string(content) != "// mine\n" {
		t.Errorf("existing root.tsx overwritten: %q", content)
	}
}
