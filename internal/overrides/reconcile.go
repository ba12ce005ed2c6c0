package overrides

import (
	"os"
	"sort"
	"strings"

	"github.com/vango-dev/routegen/internal/errors"
	"github.com/vango-dev/routegen/internal/templates"
)

// Group is a category as it appears in the override table.
type Group struct {
	Name  string
	Label string
}

// Store keeps the override table at Path in sync with the route files.
type Store struct {
	// Path is the table file.
	Path string

	// Extension is the route component extension, named in the header.
	Extension string

	// Groups are the categories in table order.
	Groups []Group
}

// Result describes what a reconciliation changed.
type Result struct {
	// Created is set when the table was written from scratch.
	Created bool `json:"created"`

	// Added lists the keys appended, in discovery order.
	Added []string `json:"added,omitempty"`

	// Removed lists the keys dropped, in file order.
	Removed []string `json:"removed,omitempty"`
}

// Changed reports whether the table file was written.
func (r Result) Changed() bool {
	return r.Created || len(r.Added) > 0 || len(r.Removed) > 0
}

// Load reads the table at s.Path.
func (s *Store) Load() (Table, []*errors.Error) {
	return Load(s.Path)
}

// Reconcile makes the key set of the table equal to discovered, the keys of
// the route files currently on disk. A missing or corrupted table is written
// fresh. Otherwise entry lines of vanished files are dropped and entries for
// new files are inserted before the closing brace, leaving every other line
// untouched. The file is written only when something changed.
func (s *Store) Reconcile(discovered []string) (Result, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil && !os.IsNotExist(err) {
		return Result{}, errors.New("R110").
			WithDetail("Could not read " + s.Path).
			Wrap(err)
	}

	content := string(data)
	if err != nil || !usable(content) {
		return s.create(discovered)
	}

	present := make(map[string]bool, len(discovered))
	for _, key := range discovered {
		present[key] = true
	}

	var res Result
	configured := make(map[string]bool)
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		m := keyPattern.FindStringSubmatch(line)
		if m == nil {
			kept = append(kept, line)
			continue
		}
		key := templates.UnescapeString(m[1])
		if !present[key] {
			if !configured[key] {
				res.Removed = append(res.Removed, key)
			}
			configured[key] = true
			continue
		}
		configured[key] = true
		kept = append(kept, line)
	}

	for _, key := range discovered {
		if !configured[key] {
			res.Added = append(res.Added, key)
			configured[key] = true
		}
	}

	if !res.Changed() {
		return res, nil
	}

	if len(res.Added) > 0 {
		at := closingLine(kept)
		block := s.addedBlock(res.Added)
		kept = append(kept[:at], append(block, kept[at:]...)...)
	}

	if err := s.write([]byte(strings.Join(kept, "\n"))); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Stale returns the keys of table whose route file is not in discovered.
func Stale(table Table, discovered []string) []string {
	present := make(map[string]bool, len(discovered))
	for _, key := range discovered {
		present[key] = true
	}
	var stale []string
	for key := range table {
		if !present[key] {
			stale = append(stale, key)
		}
	}
	sort.Strings(stale)
	return stale
}

func (s *Store) create(discovered []string) (Result, error) {
	byGroup := make(map[string][]templates.TableEntry)
	for _, key := range discovered {
		category, base := SplitKey(key)
		byGroup[category] = append(byGroup[category], templates.TableEntry{Key: key, Path: DefaultPath(base)})
	}

	data := templates.OverrideTableData{Extension: s.Extension}
	for _, g := range s.Groups {
		if entries := byGroup[g.Name]; len(entries) > 0 {
			data.Groups = append(data.Groups, templates.TableGroup{Label: g.Label, Entries: entries})
		}
	}

	content, err := templates.OverrideTable(data)
	if err != nil {
		return Result{}, err
	}
	if err := s.write(content); err != nil {
		return Result{}, err
	}
	return Result{Created: true, Added: append([]string(nil), discovered...)}, nil
}

// addedBlock renders the lines inserted for new keys, grouped by category
// in table order.
func (s *Store) addedBlock(added []string) []string {
	byGroup := make(map[string][]string)
	for _, key := range added {
		category, _ := SplitKey(key)
		byGroup[category] = append(byGroup[category], key)
	}

	var block []string
	emit := func(category string) {
		keys := byGroup[category]
		if len(keys) == 0 {
			return
		}
		block = append(block, "", templates.AddedGroupComment(category))
		for _, key := range keys {
			_, base := SplitKey(key)
			block = append(block, templates.AddedEntryLine(key, DefaultPath(base)))
		}
		delete(byGroup, category)
	}
	for _, g := range s.Groups {
		emit(g.Name)
	}
	// Keys of categories no longer configured still get a line.
	for _, key := range added {
		category, _ := SplitKey(key)
		emit(category)
	}
	return block
}

func (s *Store) write(content []byte) error {
	if err := os.WriteFile(s.Path, content, 0644); err != nil {
		return errors.New("R110").
			WithDetail("Could not write " + s.Path).
			Wrap(err)
	}
	return nil
}

// usable reports whether an existing table can be edited in place.
func usable(content string) bool {
	if len(content) < MinSize {
		return false
	}
	lines := strings.Split(content, "\n")
	return closingLine(lines) > 0
}

// closingLine returns the index of the last line starting with "}", or 0.
func closingLine(lines []string) int {
	for i := len(lines) - 1; i > 0; i-- {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "}") {
			return i
		}
	}
	return 0
}
