package errors

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "config error",
			code:    "R101",
			wantMsg: "Invalid config file",
			wantCat: CategoryConfig,
		},
		{
			name:    "generate error",
			code:    "R110",
			wantMsg: "Write failed",
			wantCat: CategoryGenerate,
		},
		{
			name:    "unknown error code",
			code:    "R999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	err := New("R110")
	if got, want := err.Error(), "R110: Write failed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := New("R110").Wrap(fs.ErrPermission)
	if got, want := wrapped.Error(), "R110: Write failed: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	plain := &Error{Message: "test error"}
	if plain.Error() != "test error" {
		t.Errorf("Error() = %q, want %q", plain.Error(), "test error")
	}
}

func TestError_Unwrap(t *testing.T) {
	err := New("R110").Wrap(fs.ErrPermission)
	if !stderrors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should see the wrapped error")
	}

	var target *Error
	if !stderrors.As(error(err), &target) || target.Code != "R110" {
		t.Error("errors.As should find *Error")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "R110") != nil {
		t.Error("FromError(nil) should be nil")
	}

	original := New("R111")
	if got := FromError(original, "R110"); got != original {
		t.Error("FromError should return *Error unchanged")
	}

	got := FromError(fs.ErrNotExist, "R111")
	if got.Code != "R111" || got.Wrapped != fs.ErrNotExist {
		t.Errorf("FromError = %+v", got)
	}
}

func TestWithLocation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "route.config.ts")
	content := "line1\nline2\nline3\nline4\nline5\nline6\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	err := New("R103").WithLocation(path, 3, 0)
	if err.Location.String() != path+":3" {
		t.Errorf("Location = %q", err.Location.String())
	}
	want := []string{"line1", "line2", "line3", "line4", "line5"}
	if strings.Join(err.Context, ",") != strings.Join(want, ",") {
		t.Errorf("Context = %v, want %v", err.Context, want)
	}
}

func TestFormat(t *testing.T) {
	defer SetColors(ColorsEnabled())
	SetColors(false)

	err := New("R104").
		WithSuggestion("Delete the file to regenerate it").
		AsWarning()

	out := err.Format()
	for _, want := range []string{
		"WARNING R104: Override table looks corrupted",
		"Defaults are used for every route.",
		"Hint: Delete the file to regenerate it",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestFormat_LocationContext(t *testing.T) {
	defer SetColors(ColorsEnabled())
	SetColors(false)

	dir := t.TempDir()
	path := filepath.Join(dir, "route.config.ts")
	content := "a\nb\nc\nd\ne\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out := New("R103").WithLocation(path, 4, 0).Format()
	if !strings.Contains(out, "→    4 │ d") {
		t.Errorf("Format() should mark line 4:\n%s", out)
	}
	if !strings.Contains(out, "   2 │ b") {
		t.Errorf("Format() should include line 2:\n%s", out)
	}
}

func TestFprint_PlainError(t *testing.T) {
	defer SetColors(ColorsEnabled())
	SetColors(false)

	var buf bytes.Buffer
	Fprint(&buf, fs.ErrClosed)
	if !strings.Contains(buf.String(), "ERROR: file already closed") {
		t.Errorf("Fprint = %q", buf.String())
	}
}

func TestGetAllCodes(t *testing.T) {
	codes := GetAllCodes()
	if len(codes) == 0 {
		t.Fatal("no codes registered")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Fatalf("codes not sorted: %v", codes)
		}
	}
	for _, code := range codes {
		tmpl, ok := GetTemplate(code)
		if !ok || tmpl.Message == "" {
			t.Errorf("code %s has no message", code)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five six", 10)
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q longer than 10", line)
		}
	}
	if strings.Join(lines, " ") != "one two three four five six" {
		t.Errorf("wrapText lost words: %v", lines)
	}
}
