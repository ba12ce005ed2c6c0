package i18n

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

const enJSON = `{
  "auth": {
    "login": {"email": "Email", "password": "Password"}
  },
  "common": {"error": "Something went wrong"},
  "count": 3
}`

const frYAML = `auth:
  login:
    email: Courriel
common:
  error: Une erreur est survenue
`

func TestCatalog_T(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en", "translation.json"), enJSON)

	c, err := Load(dir, "en", Options{Logger: logger})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	tests := []struct {
		key  string
		want string
	}{
		{"auth.login.email", "Email"},
		{"common.error", "Something went wrong"},
		{"auth.login", "auth.login"},
		{"auth.login.missing", "auth.login.missing"},
		{"count", "count"},
		{"count.x", "count.x"},
	}
	for _, tt := range tests {
		if got := c.T(tt.key); got != tt.want {
			t.Errorf("T(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}

	if !strings.Contains(logs.String(), "key=auth.login.missing") {
		t.Errorf("missing key not logged:\n%s", logs.String())
	}
}

func TestCatalog_ProductionIsQuiet(t *testing.T) {
	var logs bytes.Buffer
	c := NewCatalog("en", map[string]any{}, Options{
		Production: true,
		Logger:     slog.New(slog.NewTextHandler(&logs, nil)),
	})
	if got := c.T("nav.home"); got != "nav.home" {
		t.Errorf("T = %q", got)
	}
	if logs.Len() != 0 {
		t.Errorf("production catalog logged: %s", logs.String())
	}
}

func TestCatalog_Keys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en", "translation.json"), enJSON)
	c, err := Load(dir, "en", Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"auth.login.email", "auth.login.password", "common.error"}
	got := c.Keys()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Keys = %v, want %v", got, want)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(dir, "de", Options{}); err == nil || !strings.Contains(err.Error(), "R140") {
		t.Errorf("missing locale: err = %v, want R140", err)
	}

	writeFile(t, filepath.Join(dir, "es", "translation.json"), "{not json")
	if _, err := Load(dir, "es", Options{}); err == nil || !strings.Contains(err.Error(), "R140") {
		t.Errorf("malformed locale: err = %v, want R140", err)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "en", "translation.json"), enJSON)
	writeFile(t, filepath.Join(dir, "fr", "translation.yaml"), frYAML)
	writeFile(t, filepath.Join(dir, "de", "translation.json"), enJSON)

	result, err := Check(dir, "en", []string{"en", "fr", "de"}, Options{Production: true})
	if err != nil {
		t.Fatalf("Check error: %v", err)
	}
	if _, ok := result["de"]; ok {
		t.Errorf("complete locale reported: %v", result["de"])
	}
	want := []string{"auth.login.password"}
	if strings.Join(result["fr"], ",") != strings.Join(want, ",") {
		t.Errorf("fr missing = %v, want %v", result["fr"], want)
	}
}

func TestMissing_ShapeMismatch(t *testing.T) {
	base := NewCatalog("en", map[string]any{
		"common": map[string]any{"error": "Something went wrong", "ok": "OK"},
		"nav":    "Navigation",
	}, Options{})
	other := NewCatalog("fr", map[string]any{
		"common": map[string]any{
			"error": map[string]any{"title": "Erreur"},
			"ok":    "OK",
		},
		"nav": map[string]any{"home": "Accueil"},
	}, Options{})

	want := []string{"common.error", "nav"}
	if got := Missing(base, other); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Missing = %v, want %v", got, want)
	}
	if got := Missing(other, base); strings.Join(got, ",") != "common.error.title,nav.home" {
		t.Errorf("reverse Missing = %v", got)
	}
}
