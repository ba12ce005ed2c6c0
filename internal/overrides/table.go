package overrides

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/templates"
)

// MinSize is the size under which an existing table is treated as corrupted.
const MinSize = 100

var (
	// entryPattern matches a complete single-line entry.
	// Keys and paths are string literals and may contain escapes.
	entryPattern = regexp.MustCompile(`^\s*"((?:[^"\\]|\\.)+)":\s*\{\s*path:\s*"((?:[^"\\]|\\.)*)"\s*,\s*override:\s*(true|false)\s*\}`)

	// keyPattern matches the start of any entry line.
	keyPattern = regexp.MustCompile(`^\s*"((?:[^"\\]|\\.)+)":\s*\{`)
)

// Entry is the override record of one route file.
type Entry struct {
	// Path is the custom path. Empty paths are valid.
	Path string

	// Override selects Path over the file-system-derived path.
	Override bool
}

// Table maps route keys to their override entries.
type Table map[string]Entry

// Lookup returns the entry for key, or nil.
func (t Table) Lookup(key string) *Entry {
	e, ok := t[key]
	if !ok {
		return nil
	}
	return &e
}

// Key returns the table key of a route file.
func Key(category, baseName string) string {
	return category + "/" + baseName
}

// SplitKey splits a table key into category and base name.
func SplitKey(key string) (category, baseName string) {
	category, baseName, _ = strings.Cut(key, "/")
	return category, baseName
}

// DefaultPath returns the path written for a newly discovered route file.
func DefaultPath(baseName string) string {
	if baseName == "home" {
		return "/"
	}
	return strings.ToLower(baseName)
}

// Load reads the table at path. It never fails: a missing file yields an
// empty table, and unreadable or corrupted content yields an empty table
// plus a warning. Entry-like lines that are not in single-line form are
// reported as warnings and skipped.
func Load(path string) (Table, []*errors.Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, nil
		}
		return Table{}, []*errors.Error{
			errors.New("R104").WithDetail("Could not read " + path).Wrap(err).AsWarning(),
		}
	}
	return Parse(path, string(data))
}

// Parse extracts the entries of a table whose content was read from path.
func Parse(path, content string) (Table, []*errors.Error) {
	if len(content) < MinSize {
		return Table{}, []*errors.Error{
			errors.New("R104").
				WithDetail(path + " is shorter than " + strconv.Itoa(MinSize) + " bytes. It will be recreated on the next rebuild.").
				AsWarning(),
		}
	}

	var warnings []*errors.Error
	table := Table{}
	for i, line := range strings.Split(content, "\n") {
		m := entryPattern.FindStringSubmatch(line)
		if m == nil {
			if k := keyPattern.FindStringSubmatch(line); k != nil {
				warnings = append(warnings, errors.New("R103").
					WithLocation(path, i+1, 0).
					WithDetail(`Entry "`+templates.UnescapeString(k[1])+`" must be written as "key": { path: "...", override: true|false } on one line. Defaults are used for it.`).
					AsWarning())
			}
			continue
		}
		key := templates.UnescapeString(m[1])
		table[key] = Entry{Path: templates.UnescapeString(m[2]), Override: m[3] == "true"}
	}

	if len(table) == 0 {
		warnings = append(warnings, errors.New("R104").
			WithDetail("No entry could be parsed from "+path+". Defaults are used for every route.").
			AsWarning())
		return Table{}, warnings
	}
	return table, warnings
}
