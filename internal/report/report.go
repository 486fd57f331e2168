// Package report joins parsed unit/ability records with the string tables
// and renders the hero skill list.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"hero-skill-lister/internal/parser"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Skill is a resolved hero ability.
type Skill struct {
	AbilityID string `yaml:"ability_id"`
	Name      string `yaml:"name"`
	Tooltip   string `yaml:"tooltip"`
}

// Entry is a resolved hero with its skills in SLK order.
type Entry struct {
	UnitID string  `yaml:"unit_id"`
	Name   string  `yaml:"name"`
	Skills []Skill `yaml:"skills"`
}

// Build resolves every record against the unit and ability tables.
// Records whose unit has no name are dropped, as are abilities without a name.
func Build(records []parser.Association, units, abilities parser.Lookup) []Entry {
	entries := make([]Entry, 0, len(records))
	skippedUnits, skippedSkills := 0, 0

	for _, rec := range records {
		name, ok := units.Get(rec.Subject, parser.FieldName)
		if !ok {
			skippedUnits++
			continue
		}

		entry := Entry{UnitID: rec.Subject, Name: name}
		for _, id := range rec.Related {
			skillName, ok := abilities.Get(id, parser.FieldName)
			if !ok {
				skippedSkills++
				continue
			}
			tip, _ := abilities.Get(id, parser.FieldTooltip)
			entry.Skills = append(entry.Skills, Skill{AbilityID: id, Name: skillName, Tooltip: tip})
		}
		entries = append(entries, entry)
	}

	log.Debug().
		Int("records", len(records)).
		Int("entries", len(entries)).
		Int("skipped_units", skippedUnits).
		Int("skipped_skills", skippedSkills).
		Msg("Resolved hero skills")

	return entries
}

// Render writes entries in the "[hero]" / "skill = tooltip" layout with
// CRLF line endings.
func Render(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "[%s]\r\n", e.Name); err != nil {
			return fmt.Errorf("write hero %s: %w", e.UnitID, err)
		}
		for _, s := range e.Skills {
			if _, err := fmt.Fprintf(bw, "%s = %s\r\n", s.Name, s.Tooltip); err != nil {
				return fmt.Errorf("write skill %s: %w", s.AbilityID, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

// WriteFile renders entries to path as UTF-8 with a byte order mark.
func WriteFile(path string, entries []Entry) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report file: %w", cerr)
		}
	}()

	enc := transform.NewWriter(f, unicode.UTF8BOM.NewEncoder())
	if err := Render(enc, entries); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush report encoder: %w", err)
	}

	log.Info().Str("path", path).Int("heroes", len(entries)).Msg("Wrote hero skill list")
	return nil
}
