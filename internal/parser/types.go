package parser

import "errors"

// ErrSourceUnavailable marks failures to open or read one of the input files.
var ErrSourceUnavailable = errors.New("source unavailable")

// Association links a unit to the abilities listed for it in the SLK export.
type Association struct {
	// Subject is the unit ID taken from the X1 cell.
	Subject string `yaml:"subject"`
	// Related are the ability IDs from the X6 cell, in file order.
	Related []string `yaml:"related"`
}

// clone returns a copy that shares no backing array with a.
func (a Association) clone() Association {
	out := Association{Subject: a.Subject}
	if a.Related != nil {
		out.Related = make([]string, len(a.Related))
		copy(out.Related, a.Related)
	}
	return out
}

// MatchKind tags the outcome of matching a single SLK line.
type MatchKind int

const (
	MatchNone MatchKind = iota
	MatchSubject
	MatchRelated
)

func (k MatchKind) String() string {
	switch k {
	case MatchSubject:
		return "subject"
	case MatchRelated:
		return "related"
	default:
		return "none"
	}
}

// LineMatch is the result of Match. Only the field for Kind is set.
type LineMatch struct {
	Kind    MatchKind
	Subject string
	Related []string
}

// Lookup is a read-only section/key store. A missing entry is reported
// with ok == false, never as an error.
type Lookup interface {
	Get(section, key string) (value string, ok bool)
}

// Field names used by the Warcraft III string tables.
const (
	FieldName    = "Name"
	FieldTooltip = "Researchubertip"
)
