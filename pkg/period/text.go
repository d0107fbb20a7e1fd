package period

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lambdcalculus/periods/internal/safemath"
	"github.com/spf13/pflag"
)

var (
	_ sql.Scanner   = (*Period)(nil)
	_ sql.Scanner   = (*NullPeriod)(nil)
	_ driver.Valuer = NullPeriod{}
	_ pflag.Value   = Flag{}
)

// MarshalText encodes the period in ISO-8601 form.
func (p Period) MarshalText() ([]byte, error) {
	return ISOStandard().AppendPeriod(nil, p)
}

// UnmarshalText parses ISO-8601 text. The period keeps its type if it has
// one, so a Time period only accepts time fields.
func (p *Period) UnmarshalText(text []byte) error {
	v, err := ParseISO(string(text), p.Type())
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ParseISO parses ISO-8601 text into a period of type pt, or Standard if pt
// is nil. Millis print as fractional seconds, so a type with millis but no
// seconds takes the seconds back as millis: "PT1.500S" is 1500 millis.
func ParseISO(text string, pt *PeriodType) (Period, error) {
	pt = typeOrStandard(pt)
	if pt.IsSupported(SecondsField) || !pt.IsSupported(MillisField) {
		return ISOStandard().WithParseType(pt).ParsePeriod(text)
	}
	v, err := ISOStandard().ParsePeriod(text)
	if err != nil {
		return Period{}, err
	}
	ms, err := safemath.ToInt32(int64(v.Seconds())*MillisPerSecond + int64(v.Millis()))
	if err != nil {
		return Period{}, overflow("seconds as millis")
	}
	if v, err = v.WithField(SecondsField, 0); err != nil {
		return Period{}, err
	}
	if v, err = v.WithField(MillisField, ms); err != nil {
		return Period{}, err
	}
	return v.WithType(pt)
}

// MarshalJSON encodes the period as an ISO-8601 string.
func (p Period) MarshalJSON() ([]byte, error) {
	s, err := ISOStandard().Print(p)
	if err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// UnmarshalJSON decodes an ISO-8601 string.
func (p *Period) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: period must be a JSON string: %w", ErrInvalidArgument, err)
	}
	return p.UnmarshalText([]byte(s))
}

// Scan reads an ISO-8601 string or byte slice from a database column.
func (p *Period) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return p.UnmarshalText([]byte(v))
	case []byte:
		return p.UnmarshalText(v)
	}
	return fmt.Errorf("%w: cannot scan %T into a period", ErrInvalidArgument, src)
}

// NullPeriod is a period column that may be NULL.
type NullPeriod struct {
	Period Period
	Valid  bool
}

// Scan implements sql.Scanner.
func (n *NullPeriod) Scan(src any) error {
	if src == nil {
		n.Period, n.Valid = Period{}, false
		return nil
	}
	if err := n.Period.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Value implements driver.Valuer, storing the ISO-8601 string.
func (n NullPeriod) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return ISOStandard().Print(n.Period)
}

// Flag adapts a *Period to pflag.Value, for flags such as --period=P1D.
type Flag struct {
	P *Period
}

func (f Flag) String() string {
	if f.P == nil {
		return ""
	}
	return f.P.String()
}

// Set parses s into a Standard period, replacing the default's type.
func (f Flag) Set(s string) error {
	v, err := ISOStandard().ParsePeriod(s)
	if err != nil {
		return err
	}
	*f.P = v
	return nil
}

func (f Flag) Type() string {
	return "period"
}

// PeriodVar registers a period flag on fs.
func PeriodVar(fs *pflag.FlagSet, p *Period, name string, value Period, usage string) {
	*p = value
	fs.Var(Flag{P: p}, name, usage)
}
