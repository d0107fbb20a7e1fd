package period

import (
	"errors"
	"fmt"

	"github.com/lambdcalculus/periods/internal/safemath"
)

var (
	// ErrInvalidArgument reports structurally invalid input, such as an empty
	// or duplicated field set, or mismatched partials.
	ErrInvalidArgument = errors.New("period: invalid argument")
	// ErrUnsupportedField reports a nonzero value for a field the type lacks.
	ErrUnsupportedField = errors.New("period: unsupported field")
	// ErrArithmeticOverflow reports a result that does not fit its field.
	ErrArithmeticOverflow = safemath.ErrOverflow
	// ErrUnsupportedOperation reports a conversion that is impossible for the
	// current values, e.g. a fixed-length duration from a period with months.
	ErrUnsupportedOperation = errors.New("period: unsupported operation")
	// ErrInvalidState reports misuse of a Builder.
	ErrInvalidState = errors.New("period: invalid builder state")
)

// ParseError is returned when text cannot be parsed by a Formatter.
// It wraps ErrInvalidArgument.
type ParseError struct {
	Text string
	Pos  int
}

// Error renders a bounded sample of the text around the failure offset.
func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	text, pos := e.Text, e.Pos
	sampleLen := pos + 32
	sample := text
	if len(text) > sampleLen+3 {
		sample = text[:sampleLen] + "..."
	}
	switch {
	case pos <= 0:
		return fmt.Sprintf("Invalid format: %q", sample)
	case pos >= len(text):
		return fmt.Sprintf("Invalid format: %q is too short", sample)
	}
	return fmt.Sprintf("Invalid format: %q is malformed at %q", sample, sample[pos:])
}

// Unwrap makes errors.Is(err, ErrInvalidArgument) hold.
func (e *ParseError) Unwrap() error {
	return ErrInvalidArgument
}

func unsupportedField(kind FieldKind, pt *PeriodType) error {
	return fmt.Errorf("%w: %s is not supported by %s", ErrUnsupportedField, kind, pt)
}

func overflow(what string) error {
	return fmt.Errorf("%w: %s", ErrArithmeticOverflow, what)
}
