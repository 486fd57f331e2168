package parser

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// Cell shapes recognised in UnitAbilities.slk. Everything else is ignored.
const (
	// SubjectPattern matches the unit ID cell, e.g. C;Y1;X1;K"Hpal".
	SubjectPattern = `^C;Y\d+;X1;K"(\S+)"$`
	// RelatedPattern matches the hero ability list cell, e.g. C;X6;K"AHhb,AHds".
	RelatedPattern = `^C;X6;K"(\S+)"$`
)

var (
	subjectRE = regexp.MustCompile(SubjectPattern)
	relatedRE = regexp.MustCompile(RelatedPattern)
)

// Match classifies a single line. The subject shape is tried first.
func Match(line string) LineMatch {
	if m := subjectRE.FindStringSubmatch(line); m != nil {
		return LineMatch{Kind: MatchSubject, Subject: m[1]}
	}
	if m := relatedRE.FindStringSubmatch(line); m != nil {
		return LineMatch{Kind: MatchRelated, Related: strings.Split(m[1], ",")}
	}
	return LineMatch{Kind: MatchNone}
}

// Step folds one line into the accumulator. It returns the new accumulator
// and, for an ability list line, the record to emit. The accumulator is not
// cleared after emitting, so a second X6 line for the same unit emits again.
func Step(acc Association, line string) (Association, *Association) {
	return apply(acc, Match(line))
}

func apply(acc Association, m LineMatch) (Association, *Association) {
	switch m.Kind {
	case MatchSubject:
		return Association{Subject: m.Subject}, nil
	case MatchRelated:
		acc.Related = m.Related
		out := acc.clone()
		return acc, &out
	default:
		return acc, nil
	}
}

// Parse runs Step over lines in order and collects the emitted records.
func Parse(lines []string) []Association {
	var (
		acc     Association
		records []Association
	)
	for _, line := range lines {
		var rec *Association
		acc, rec = Step(acc, line)
		if rec != nil {
			records = append(records, *rec)
		}
	}
	return records
}

// ParseReader parses an SLK stream without holding all lines in memory.
func ParseReader(r io.Reader) ([]Association, error) {
	var (
		acc     Association
		records []Association
		ignored int
	)

	lines := 0
	err := scanLines(r, func(line string) {
		lines++
		m := Match(line)
		if m.Kind == MatchNone {
			ignored++
			return
		}
		var rec *Association
		acc, rec = apply(acc, m)
		if rec != nil {
			records = append(records, *rec)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scan slk: %w", err)
	}

	log.Debug().
		Int("lines", lines).
		Int("ignored", ignored).
		Int("records", len(records)).
		Msg("Parsed SLK stream")

	return records, nil
}

// ParseFile opens path and parses it as an SLK export.
func ParseFile(path string) ([]Association, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, path, err)
	}
	return records, nil
}
