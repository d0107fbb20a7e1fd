// Package formats keeps the named period formats a server or tool offers:
// the stock ones and those defined in config.toml.
package formats

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/lambdcalculus/periods/internal/config"
	"github.com/lambdcalculus/periods/pkg/period"
	"golang.org/x/text/language"
)

// Words is the name of the word based stock format, which depends on the language.
const Words = "words"

var stock = map[string]func() *period.Formatter{
	"iso":                period.ISOStandard,
	"alternate":          period.ISOAlternate,
	"alternate-extended": period.ISOAlternateExtended,
	"compact":            period.Compact,
}

// Registry resolves format names. Its methods can be called from multiple goroutines.
type Registry struct {
	mu          sync.RWMutex
	custom      map[string]*period.Formatter
	defaultLang language.Tag
}

// New makes a registry holding only the stock formats.
func New(defaultLang language.Tag) *Registry {
	return &Registry{
		custom:      make(map[string]*period.Formatter),
		defaultLang: defaultLang,
	}
}

// Load builds every configured format and adds it, replacing formats of the
// same name. Nothing is added if any of them fails.
func (r *Registry) Load(confs []config.Format) error {
	built := make(map[string]*period.Formatter, len(confs))
	for _, conf := range confs {
		if _, ok := stock[conf.Name]; ok || conf.Name == Words {
			return fmt.Errorf("formats: %q is a built-in format.", conf.Name)
		}
		f, err := Build(conf)
		if err != nil {
			return err
		}
		built[conf.Name] = f
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for name, f := range built {
		r.custom[name] = f
	}
	return nil
}

// Lookup returns the format called `name`. `lang` picks the language of the
// "words" format; empty means the registry's default.
func (r *Registry) Lookup(name, lang string) (*period.Formatter, error) {
	if name == "" {
		name = "iso"
	}
	if mk, ok := stock[name]; ok {
		return mk(), nil
	}
	if name == Words {
		tag := r.defaultLang
		if lang != "" {
			t, err := language.Parse(lang)
			if err != nil {
				return nil, fmt.Errorf("formats: Bad language %q (%w).", lang, err)
			}
			tag = t
		}
		return period.WordBased(tag), nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.custom[name]
	if !ok {
		return nil, fmt.Errorf("formats: No format named %q.", name)
	}
	return f, nil
}

// Names lists every format, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(stock)+1+len(r.custom))
	for name := range stock {
		names = append(names, name)
	}
	names = append(names, Words)
	for name := range r.custom {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build turns a configured format into a formatter.
func Build(conf config.Format) (*period.Formatter, error) {
	b := period.NewBuilder()
	for i, step := range conf.Steps {
		if err := apply(b, step); err != nil {
			return nil, fmt.Errorf("formats: Bad step #%v of %q (%w).", i+1, conf.Name, err)
		}
		if err := b.Err(); err != nil {
			return nil, fmt.Errorf("formats: Bad step #%v of %q (%w).", i+1, conf.Name, err)
		}
	}
	f, err := b.ToFormatter()
	if err != nil {
		return nil, fmt.Errorf("formats: Couldn't build %q (%w).", conf.Name, err)
	}

	if conf.Lang != "" {
		tag, err := language.Parse(conf.Lang)
		if err != nil {
			return nil, fmt.Errorf("formats: Bad language for %q (%w).", conf.Name, err)
		}
		f = f.WithLocale(tag)
	}
	if conf.ParseFields != "" {
		pt, err := ParseType(conf.ParseFields)
		if err != nil {
			return nil, fmt.Errorf("formats: Bad parse_fields for %q (%w).", conf.Name, err)
		}
		f = f.WithParseType(pt)
	}
	return f, nil
}

// ParseType resolves a comma separated field list such as "days,hours" to a
// period type. An empty list means Standard.
func ParseType(fields string) (*period.PeriodType, error) {
	if strings.TrimSpace(fields) == "" {
		return period.Standard, nil
	}
	kinds, err := period.ParseFieldKinds(fields)
	if err != nil {
		return nil, err
	}
	return period.ForFields(kinds...)
}

func apply(b *period.Builder, s config.Step) error {
	switch s.Kind {
	case "literal":
		b.AppendLiteral(s.Text)
	case "prefix":
		if s.Plural != "" {
			b.AppendPluralPrefix(s.Text, s.Plural)
		} else {
			b.AppendPrefix(s.Text)
		}
	case "suffix":
		if s.Plural != "" {
			b.AppendPluralSuffix(s.Text, s.Plural)
		} else {
			b.AppendSuffix(s.Text)
		}
	case "field":
		return appendField(b, s.Field)
	case "separator":
		switch s.When {
		case "":
			final := s.Final
			if final == "" {
				final = s.Text
			}
			b.AppendSeparatorWithVariants(s.Text, final, s.Variants...)
		case "after":
			b.AppendSeparatorIfFieldsAfter(s.Text)
		case "before":
			b.AppendSeparatorIfFieldsBefore(s.Text)
		default:
			return fmt.Errorf("unknown separator condition %q", s.When)
		}
	case "min_digits":
		b.MinimumPrintedDigits(s.Digits)
	case "max_digits":
		b.MaximumParsedDigits(s.Digits)
	case "reject_signed":
		b.RejectSignedValues(s.Reject)
	case "zero":
		return setZero(b, s.Policy)
	default:
		return fmt.Errorf("unknown step kind %q", s.Kind)
	}
	return nil
}

func appendField(b *period.Builder, name string) error {
	switch name {
	case "seconds_millis":
		b.AppendSecondsWithMillis()
	case "seconds_optional_millis":
		b.AppendSecondsWithOptionalMillis()
	case "millis3":
		b.AppendMillis3Digit()
	default:
		kind, err := period.ParseFieldKind(name)
		if err != nil {
			return err
		}
		b.AppendField(kind)
	}
	return nil
}

func setZero(b *period.Builder, policy string) error {
	switch policy {
	case "rarely_last", "":
		b.PrintZeroRarelyLast()
	case "rarely_first":
		b.PrintZeroRarelyFirst()
	case "if_supported":
		b.PrintZeroIfSupported()
	case "always":
		b.PrintZeroAlways()
	case "never":
		b.PrintZeroNever()
	default:
		return fmt.Errorf("unknown zero policy %q", policy)
	}
	return nil
}
