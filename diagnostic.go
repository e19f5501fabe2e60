package godeko

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/godeko/i18n"
)

// Range identifies a span of the original source text in byte offsets.
type Range struct {
	Start int
	End   int
}

func (r Range) String() string { return fmt.Sprintf("%d..%d", r.Start, r.End) }

// Severity expresses the severity level for diagnostics.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Diagnostic codes (exported consts for IDE completion and type safety by convention)
const (
	CodeParseError    = "parse_error"
	CodeIncorrectType = "incorrect_type"
	CodeOutOfRange    = "out_of_range"
	CodeUnknownKey    = "unknown_key"
	CodeRequired      = "required"
	CodeDuplicateKey  = "duplicate_key"
	CodeTruncated     = "truncated"
)

// Diagnostic records a single parse or deserialization defect. It is created
// where the mismatch is detected and never mutated afterward; rendering is
// entirely up to the consumer.
type Diagnostic struct {
	Code     string // One of the codes listed above.
	Severity Severity
	Range    Range // Byte offsets into the original source.
	Message  string
	// AllowedKeys lists the recognized keys (sorted) when Code is unknown_key,
	// so renderers can suggest alternatives.
	AllowedKeys []string
	Hint        string // Optional: remediation hints.
	// InputFragment is an optional snippet of the offending input. Format
	// adapter entry points attach it best-effort; it may be empty.
	InputFragment string
}

// Diagnostics is an ordered collection of diagnostics that implements error.
// One accumulator belongs to exactly one top-level deserialize call and is
// threaded by pointer through the recursion.
type Diagnostics []Diagnostic

// Error summarizes the first few diagnostics.
func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(ds)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := ds[i]
		// e.g. incorrect_type at 12..18
		fmt.Fprintf(b, "%s at %s", it.Code, it.Range)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// HasErrors reports whether any diagnostic carries Error severity.
func (ds Diagnostics) HasErrors() bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Push appends diagnostics to the accumulator.
func (ds *Diagnostics) Push(more ...Diagnostic) { *ds = append(*ds, more...) }

// AsDiagnostics extracts Diagnostics from an error using errors.As internally.
func AsDiagnostics(err error) (Diagnostics, bool) {
	if err == nil {
		return nil, false
	}
	var ds Diagnostics
	if errors.As(err, &ds) {
		return ds, true
	}
	return nil, false
}

// NewIncorrectType reports a value of the wrong shape.
func NewIncorrectType(expected, found Shape, rng Range) Diagnostic {
	return Diagnostic{
		Code:     CodeIncorrectType,
		Severity: Error,
		Range:    rng,
		Message: i18n.T(CodeIncorrectType, map[string]string{
			"expected": expected.String(),
			"found":    found.String(),
		}),
	}
}

// NewOutOfRange reports a number outside the domain of the target type.
func NewOutOfRange(got, typeName, min, max string, rng Range) Diagnostic {
	return Diagnostic{
		Code:     CodeOutOfRange,
		Severity: Error,
		Range:    rng,
		Message: i18n.T(CodeOutOfRange, map[string]string{
			"got":  got,
			"type": typeName,
			"min":  min,
			"max":  max,
		}),
	}
}

// NewUnknownKey reports a map key outside the consumer's allow-list. allowed
// must be sorted; it travels with the diagnostic for suggestion rendering.
func NewUnknownKey(key string, allowed []string, rng Range) Diagnostic {
	return Diagnostic{
		Code:        CodeUnknownKey,
		Severity:    Error,
		Range:       rng,
		Message:     i18n.T(CodeUnknownKey, map[string]string{"key": key}),
		AllowedKeys: allowed,
	}
}

// NewMissingKey reports a required map key that never appeared.
func NewMissingKey(key string, rng Range) Diagnostic {
	return Diagnostic{
		Code:     CodeRequired,
		Severity: Error,
		Range:    rng,
		Message:  i18n.T(CodeRequired, map[string]string{"key": key}),
	}
}

// NewDuplicateKey reports a repeated map key found during parsing.
func NewDuplicateKey(key string, severity Severity, rng Range) Diagnostic {
	return Diagnostic{
		Code:     CodeDuplicateKey,
		Severity: severity,
		Range:    rng,
		Message:  i18n.T(CodeDuplicateKey, map[string]string{"key": key}),
	}
}

// NewParseError reports a defect found by the upstream parser.
func NewParseError(message string, rng Range) Diagnostic {
	if message == "" {
		message = i18n.T(CodeParseError, nil)
	}
	return Diagnostic{Code: CodeParseError, Severity: Error, Range: rng, Message: message}
}
