// Package i18n loads the translation catalogs of a project and checks them
// for missing keys.
//
// Catalogs use the i18next layout, one directory per locale:
//
//	public/locales/en/translation.json
//	public/locales/fr/translation.json
//
// Keys are dot-separated paths into the nested document ("auth.login.email").
package i18n

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/routegen/internal/errors"
)

// Namespace is the i18next namespace file read for each locale.
const Namespace = "translation"

// Options configures a catalog.
type Options struct {
	// Production disables missing-key warnings.
	Production bool

	Logger *slog.Logger
}

// Catalog holds the translations of one locale.
type Catalog struct {
	Locale string

	data       map[string]any
	production bool
	logger     *slog.Logger
}

// NewCatalog creates a catalog from a decoded document.
func NewCatalog(locale string, data map[string]any, opts Options) *Catalog {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if data == nil {
		data = map[string]any{}
	}
	return &Catalog{
		Locale:     locale,
		data:       data,
		production: opts.Production,
		logger:     logger,
	}
}

// Load reads <dir>/<locale>/translation.{json,yaml,yml}.
func Load(dir, locale string, opts Options) (*Catalog, error) {
	base := filepath.Join(dir, locale, Namespace)
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := base + ext
		content, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.New("R140").WithLocation(path, 0, 0).Wrap(err)
		}

		var data map[string]any
		if ext == ".json" {
			err = json.Unmarshal(content, &data)
		} else {
			err = yaml.Unmarshal(content, &data)
		}
		if err != nil {
			return nil, errors.New("R140").
				WithDetail("Could not parse " + path).
				Wrap(err)
		}
		return NewCatalog(locale, data, opts), nil
	}

	return nil, errors.New("R140").
		WithDetail("No translation file for locale \"" + locale + "\" in " + dir).
		WithSuggestion("Create " + base + ".json")
}

// T returns the translation of key. Keys that do not resolve to a string
// are returned unchanged.
func (c *Catalog) T(key string) string {
	if s, ok := c.lookup(key); ok {
		return s
	}
	if !c.production {
		c.logger.Warn("missing translation", "locale", c.Locale, "key", key)
	}
	return key
}

// Has reports whether key resolves to a string.
func (c *Catalog) Has(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

// Keys returns every key that resolves to a string, sorted.
func (c *Catalog) Keys() []string {
	var keys []string
	collect("", c.data, &keys)
	sort.Strings(keys)
	return keys
}

func (c *Catalog) lookup(key string) (string, bool) {
	node, ok := c.node(key)
	if !ok {
		return "", false
	}
	s, ok := node.(string)
	return s, ok
}

// node walks the dot-separated key through the document.
func (c *Catalog) node(key string) (any, bool) {
	var node any = c.data
	for _, part := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

func collect(prefix string, node map[string]any, keys *[]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch v := v.(type) {
		case map[string]any:
			collect(key, v, keys)
		case string:
			*keys = append(*keys, key)
		}
	}
}

// Missing lists the keys of base that do not resolve to a string in other,
// sorted.
func Missing(base, other *Catalog) []string {
	var missing []string
	for _, key := range base.Keys() {
		if !other.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// Check loads every locale and compares it against the default locale.
// The result maps each incomplete locale to its missing keys.
func Check(dir, defaultLocale string, locales []string, opts Options) (map[string][]string, error) {
	base, err := Load(dir, defaultLocale, opts)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]string)
	for _, locale := range locales {
		if locale == defaultLocale {
			continue
		}
		other, err := Load(dir, locale, opts)
		if err != nil {
			return nil, err
		}
		if missing := Missing(base, other); len(missing) > 0 {
			result[locale] = missing
		}
	}
	return result, nil
}
