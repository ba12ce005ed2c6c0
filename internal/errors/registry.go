package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration and override table (R100-R109)
	// ============================================

	"R100": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "The configuration file given with --config does not exist.",
	},
	"R101": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The routegen configuration file could not be parsed.",
	},
	"R102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "A configuration value is missing or inconsistent.",
	},
	"R103": {
		Category: CategoryOverride,
		Message:  "Override entry not recognized",
		Detail:   "The line looks like an override entry but is not in the single-line form, so it is ignored.",
	},
	"R104": {
		Category: CategoryOverride,
		Message:  "Override table looks corrupted",
		Detail:   "The override table is too short or holds no entries. Defaults are used for every route.",
	},

	// ============================================
	// Scanning and generated output (R110-R119)
	// ============================================

	"R110": {
		Category: CategoryGenerate,
		Message:  "Write failed",
		Detail:   "A generated file could not be written.",
	},
	"R111": {
		Category: CategoryGenerate,
		Message:  "Scan failed",
		Detail:   "A route directory could not be read.",
	},
	"R112": {
		Category: CategoryGenerate,
		Message:  "Template failed",
		Detail:   "A generated file template could not be rendered.",
	},

	// ============================================
	// Watching (R120-R129)
	// ============================================

	"R120": {
		Category: CategoryWatch,
		Message:  "Watcher failed to start",
		Detail:   "The file system watcher could not be created for the routes directory.",
	},

	// ============================================
	// CLI (R130-R139)
	// ============================================

	"R130": {
		Category: CategoryCLI,
		Message:  "File already exists",
		Detail:   "Refusing to overwrite an existing file.",
	},
	"R131": {
		Category: CategoryCLI,
		Message:  "Stale override entries",
		Detail:   "The override table references route files that do not exist.",
	},
	"R132": {
		Category: CategoryCLI,
		Message:  "Unknown error code",
		Detail:   "The code passed to 'routegen explain' is not registered.",
	},

	// ============================================
	// Translation catalogs (R140-R149)
	// ============================================

	"R140": {
		Category: CategoryLocale,
		Message:  "Locale load failed",
		Detail:   "A translation file could not be read or parsed.",
	},
	"R141": {
		Category: CategoryLocale,
		Message:  "Missing translations",
		Detail:   "A locale is missing keys that the default locale defines.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
