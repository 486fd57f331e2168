package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// Table is a loaded string table such as CampaignUnitStrings.txt.
// Sections and keys are matched case-insensitively. A Table is not
// modified after loading and is safe for concurrent reads.
type Table struct {
	sections map[string]map[string]string
}

// LoadTable reads an INI-style string table from path.
func LoadTable(path string) (*Table, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}

	log.Debug().Str("path", path).Int("sections", t.Len()).Msg("Loaded string table")
	return t, nil
}

// ParseTable reads "[section]" headers and "key=value" pairs from r.
// Later duplicates of a key replace earlier ones.
func ParseTable(r io.Reader) (*Table, error) {
	t := &Table{sections: make(map[string]map[string]string)}
	current := ""

	err := scanLines(r, func(line string) {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "#") {
			return
		}

		if strings.HasPrefix(trimmed, "[") {
			if end := strings.Index(trimmed, "]"); end > 0 {
				current = strings.ToLower(strings.TrimSpace(trimmed[1:end]))
				return
			}
		}

		eqIdx := strings.Index(trimmed, "=")
		if eqIdx <= 0 {
			return
		}

		key := strings.ToLower(strings.TrimSpace(trimmed[:eqIdx]))
		value := strings.TrimSpace(trimmed[eqIdx+1:])

		sec, ok := t.sections[current]
		if !ok {
			sec = make(map[string]string)
			t.sections[current] = sec
		}
		sec[key] = value
	})
	if err != nil {
		return nil, fmt.Errorf("scan table: %w", err)
	}

	return t, nil
}

// Get returns the value of key in section.
func (t *Table) Get(section, key string) (string, bool) {
	if t == nil {
		return "", false
	}
	sec, ok := t.sections[strings.ToLower(section)]
	if !ok {
		return "", false
	}
	v, ok := sec[strings.ToLower(key)]
	return v, ok
}

// Len reports the number of sections.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.sections)
}

// MapTable is a Lookup over a literal section → key → value map.
// Keys are matched exactly.
type MapTable map[string]map[string]string

func (m MapTable) Get(section, key string) (string, bool) {
	v, ok := m[section][key]
	return v, ok
}
