package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/routegen/internal/errors"
)

const (
	// DefaultRoutes is the default routes root, relative to the project.
	DefaultRoutes = "src/routes"

	// DefaultRouter is the default aggregate router file.
	DefaultRouter = "src/router.ts"

	// DefaultOverrides is the default override table file.
	DefaultOverrides = "src/routes/route.config.ts"

	// DefaultExtension is the route component file extension.
	DefaultExtension = ".tsx"

	// DefaultIndex is the per-category generated index file name.
	DefaultIndex = "index.tsx"

	// DefaultHome is the category whose routes are always absolute.
	DefaultHome = "public"

	// DefaultAlias is the module specifier prefix of the routes root.
	DefaultAlias = "@/routes"

	// DefaultDebounce is the default quiet period for file events.
	DefaultDebounce = 100 * time.Millisecond
)

// categoryName matches names usable as a directory and as the prefix of a
// generated TypeScript identifier.
var categoryName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FileNames lists the config file names searched for, in order.
var FileNames = []string{"routegen.json", "routegen.yaml", "routegen.yml"}

// Config represents the complete routegen configuration.
type Config struct {
	// Routes is the routes root directory.
	Routes string `json:"routes,omitempty" yaml:"routes,omitempty"`

	// Router is the generated aggregate router file.
	Router string `json:"router,omitempty" yaml:"router,omitempty"`

	// Overrides is the human-editable override table.
	Overrides string `json:"overrides,omitempty" yaml:"overrides,omitempty"`

	// Extension is the route component file extension (with leading dot).
	Extension string `json:"extension,omitempty" yaml:"extension,omitempty"`

	// Index is the name of each category's generated index file.
	Index string `json:"index,omitempty" yaml:"index,omitempty"`

	// Home names the category whose URLs are absolute by construction.
	Home string `json:"home,omitempty" yaml:"home,omitempty"`

	// Alias is the import specifier of the routes root used by the router
	// file (e.g., "@/routes").
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`

	// Categories are the route groups, in generation order.
	Categories []Category `json:"categories,omitempty" yaml:"categories,omitempty"`

	// Ignore contains gitignore-style patterns skipped while scanning.
	Ignore []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`

	// Dev contains watch mode settings.
	Dev DevConfig `json:"dev,omitempty" yaml:"dev,omitempty"`

	// Log contains logging settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// I18n contains translation catalog settings.
	I18n I18nConfig `json:"i18n,omitempty" yaml:"i18n,omitempty"`

	// root is the directory relative paths are resolved against.
	root string

	// configPath stores the path where the config was loaded from.
	configPath string
}

// Category is a route group bound to a base URL prefix.
type Category struct {
	// Name is the directory name under the routes root.
	Name string `json:"name" yaml:"name"`

	// BasePath is the URL prefix of the category ("/" for the home category).
	BasePath string `json:"basePath" yaml:"basePath"`

	// Label is the comment banner used in the override table.
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// DevConfig contains watch mode settings.
type DevConfig struct {
	// Listen is the status server address. Empty disables the server.
	Listen string `json:"listen,omitempty" yaml:"listen,omitempty"`

	// Debounce is the quiet period before a batch of events is handled
	// (e.g., "100ms").
	Debounce string `json:"debounce,omitempty" yaml:"debounce,omitempty"`

	// WatchIgnore contains doublestar globs, relative to the routes root,
	// whose events are dropped.
	WatchIgnore []string `json:"watchIgnore,omitempty" yaml:"watchIgnore,omitempty"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// I18nConfig contains translation catalog settings.
type I18nConfig struct {
	// Dir holds one subdirectory per locale.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Default is the reference locale.
	Default string `json:"default,omitempty" yaml:"default,omitempty"`

	// Locales lists every supported locale.
	Locales []string `json:"locales,omitempty" yaml:"locales,omitempty"`

	// Production disables missing-key diagnostics.
	Production bool `json:"production,omitempty" yaml:"production,omitempty"`
}

// DefaultCategories returns the route groups of a fresh project.
func DefaultCategories() []Category {
	return []Category{
		{Name: "public", BasePath: "/", Label: `Public routes (basePath: "/")`},
		{Name: "auth", BasePath: "/auth", Label: `Authentication routes (basePath: "/auth")`},
		{Name: "protected", BasePath: "/app", Label: `Protected routes (basePath: "/app")`},
	}
}

// New creates a Config with default values anchored at dir.
func New(dir string) *Config {
	cfg := &Config{root: dir}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from the specified directory. It looks for the
// first existing name in FileNames.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return nil, errors.New("R100").
		WithDetail("No routegen config found in " + dir).
		WithSuggestion("Run 'routegen init' to create one")
}

// LoadFile reads configuration from the specified file path. The format is
// chosen from the file extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("R100").
				WithDetail("No config file at " + path)
		}
		return nil, errors.New("R101").Wrap(err)
	}

	cfg := &Config{root: filepath.Dir(path)}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("R101").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check the file syntax")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveTo writes the configuration as indented JSON.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("R101").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("R110").Wrap(err)
	}

	c.configPath = path
	c.root = filepath.Dir(path)
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the project directory.
func (c *Config) Dir() string {
	return c.root
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Routes == "" {
		c.Routes = DefaultRoutes
	}
	if c.Router == "" {
		c.Router = DefaultRouter
	}
	if c.Overrides == "" {
		c.Overrides = filepath.ToSlash(filepath.Join(c.Routes, "route.config.ts"))
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	if c.Index == "" {
		c.Index = "index" + c.Extension
	}
	if len(c.Categories) == 0 {
		c.Categories = DefaultCategories()
	}
	if c.Home == "" {
		c.Home = DefaultHome
	}
	c.Alias = strings.TrimSuffix(c.Alias, "/")
	if c.Alias == "" {
		c.Alias = DefaultAlias
	}
	for i := range c.Categories {
		if c.Categories[i].Label == "" {
			c.Categories[i].Label = c.Categories[i].Name + ` routes (basePath: "` + c.Categories[i].BasePath + `")`
		}
	}
	if c.Dev.Debounce == "" {
		c.Dev.Debounce = DefaultDebounce.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.I18n.Dir == "" {
		c.I18n.Dir = "public/locales"
	}
	if len(c.I18n.Locales) == 0 {
		c.I18n.Locales = []string{"en", "fr"}
		if c.I18n.Default == "" {
			c.I18n.Default = "fr"
		}
	}
	if c.I18n.Default == "" {
		c.I18n.Default = c.I18n.Locales[0]
	}
}

// ApplyEnv applies environment variable overrides.
func (c *Config) ApplyEnv() {
	if level := os.Getenv("ROUTEGEN_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if listen := os.Getenv("ROUTEGEN_LISTEN"); listen != "" {
		c.Dev.Listen = listen
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Categories) == 0 {
		return errors.New("R102").
			WithDetail("At least one category is required")
	}

	seen := make(map[string]bool, len(c.Categories))
	homeFound := false
	for _, cat := range c.Categories {
		if cat.Name == "" || strings.ContainsAny(cat.Name, `/\`) {
			return errors.New("R102").
				WithDetail("Category names must be plain directory names, got " + `"` + cat.Name + `"`)
		}
		if !categoryName.MatchString(cat.Name) {
			return errors.New("R102").
				WithDetail("Category " + `"` + cat.Name + `"` + " must be a valid identifier (letters, digits, underscore)").
				WithSuggestion("Rename the directory, e.g. " + `"` + strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(cat.Name) + `"`)
		}
		if seen[cat.Name] {
			return errors.New("R102").
				WithDetail("Duplicate category " + cat.Name)
		}
		seen[cat.Name] = true
		if !strings.HasPrefix(cat.BasePath, "/") {
			return errors.New("R102").
				WithDetail("Base path of " + cat.Name + " must start with /").
				WithSuggestion(`Use "basePath": "/` + strings.TrimPrefix(cat.BasePath, "/") + `"`)
		}
		if cat.Name == c.Home {
			homeFound = true
		}
	}
	if !homeFound {
		return errors.New("R102").
			WithDetail("Home category " + c.Home + " is not one of the categories")
	}

	if _, err := time.ParseDuration(c.Dev.Debounce); err != nil {
		return errors.New("R102").
			WithDetail("dev.debounce: " + err.Error())
	}
	return nil
}

// resolve returns path made absolute against the project directory.
func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.root, filepath.FromSlash(path))
}

// RoutesPath returns the absolute path to the routes root.
func (c *Config) RoutesPath() string {
	return c.resolve(c.Routes)
}

// RouterPath returns the absolute path to the aggregate router file.
func (c *Config) RouterPath() string {
	return c.resolve(c.Router)
}

// OverridesPath returns the absolute path to the override table.
func (c *Config) OverridesPath() string {
	return c.resolve(c.Overrides)
}

// CategoryPath returns the absolute path to a category directory.
func (c *Config) CategoryPath(name string) string {
	return filepath.Join(c.RoutesPath(), name)
}

// LocalesPath returns the absolute path to the locale directory.
func (c *Config) LocalesPath() string {
	return c.resolve(c.I18n.Dir)
}

// DebounceDuration returns the parsed dev.debounce value.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Dev.Debounce)
	if err != nil || d <= 0 {
		return DefaultDebounce
	}
	return d
}

// Category returns the category with the given name.
func (c *Config) Category(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// Exists reports whether a config file exists in the given directory.
func Exists(dir string) bool {
	for _, name := range FileNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing a config file, or false if none exists.
func FindProjectRoot(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		if Exists(dir) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// LoadFromDir loads the configuration of the project containing dir. A
// project without a config file gets the defaults anchored at dir.
func LoadFromDir(dir string) (*Config, error) {
	root, ok := FindProjectRoot(dir)
	if !ok {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		return New(abs), nil
	}
	return Load(root)
}

// LoadFromWorkingDir loads configuration from the current working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return LoadFromDir(wd)
}
