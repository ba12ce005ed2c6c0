package dev

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/routes"
	"github.com/vango-dev/routegen/internal/templates"
)

// EnsureComponent writes a placeholder component into path when the file
// is empty or holds only whitespace. It reports whether it wrote. A file
// that no longer exists is left alone.
func EnsureComponent(path string) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.New("R111").WithLocation(path, 0, 0).Wrap(err)
	}
	if len(bytes.TrimSpace(content)) > 0 {
		return false, nil
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	placeholder, err := templates.Placeholder(routes.ComponentName(base))
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, placeholder, 0644); err != nil {
		return false, errors.New("R110").WithLocation(path, 0, 0).Wrap(err)
	}
	return true, nil
}
