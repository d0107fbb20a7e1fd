package period

import (
	"sync"

	"golang.org/x/text/language"
)

// wordTable holds the unit words of one language, singular then plural for
// each field in canonical order.
type wordTable struct {
	tag   language.Tag
	units [numFields][2]string
	and   string
}

var wordTables = []wordTable{
	{
		tag: language.English,
		units: [numFields][2]string{
			{" year", " years"}, {" month", " months"}, {" week", " weeks"}, {" day", " days"},
			{" hour", " hours"}, {" minute", " minutes"}, {" second", " seconds"}, {" millisecond", " milliseconds"},
		},
		and: "and",
	},
	{
		tag: language.German,
		units: [numFields][2]string{
			{" Jahr", " Jahre"}, {" Monat", " Monate"}, {" Woche", " Wochen"}, {" Tag", " Tage"},
			{" Stunde", " Stunden"}, {" Minute", " Minuten"}, {" Sekunde", " Sekunden"}, {" Millisekunde", " Millisekunden"},
		},
		and: "und",
	},
	{
		tag: language.Spanish,
		units: [numFields][2]string{
			{" año", " años"}, {" mes", " meses"}, {" semana", " semanas"}, {" día", " días"},
			{" hora", " horas"}, {" minuto", " minutos"}, {" segundo", " segundos"}, {" milisegundo", " milisegundos"},
		},
		and: "y",
	},
	{
		tag: language.French,
		units: [numFields][2]string{
			{" an", " ans"}, {" mois", " mois"}, {" semaine", " semaines"}, {" jour", " jours"},
			{" heure", " heures"}, {" minute", " minutes"}, {" seconde", " secondes"}, {" milliseconde", " millisecondes"},
		},
		and: "et",
	},
	{
		tag: language.Dutch,
		units: [numFields][2]string{
			{" jaar", " jaar"}, {" maand", " maanden"}, {" week", " weken"}, {" dag", " dagen"},
			{" uur", " uren"}, {" minuut", " minuten"}, {" seconde", " seconden"}, {" milliseconde", " milliseconden"},
		},
		and: "en",
	},
	{
		tag: language.Portuguese,
		units: [numFields][2]string{
			{" ano", " anos"}, {" mês", " meses"}, {" semana", " semanas"}, {" dia", " dias"},
			{" hora", " horas"}, {" minuto", " minutos"}, {" segundo", " segundos"}, {" milissegundo", " milissegundos"},
		},
		and: "e",
	},
}

var (
	wordMatcher    language.Matcher
	wordFormatters []func() *Formatter
)

func init() {
	tags := make([]language.Tag, len(wordTables))
	wordFormatters = make([]func() *Formatter, len(wordTables))
	for i := range wordTables {
		w := &wordTables[i]
		tags[i] = w.tag
		wordFormatters[i] = sync.OnceValue(w.formatter)
	}
	wordMatcher = language.NewMatcher(tags)
}

// formatter builds "1 year, 2 months and 3 days" style formats. A zero
// period prints as "0 milliseconds".
func (w *wordTable) formatter() *Formatter {
	and := " " + w.and + " "
	variants := []string{" ", ",", "," + and[1:], ", " + and[1:]}
	b := NewBuilder()
	for i, kind := range AllFields {
		if i > 0 {
			b.AppendSeparatorWithVariants(", ", and, variants...)
		}
		b.AppendField(kind).AppendPluralSuffix(w.units[kind][0], w.units[kind][1])
	}
	return mustFormatter(b).WithLocale(w.tag)
}

// WordBased returns a format that spells out units, e.g.
// "1 year, 2 months and 3 days". English, German, Spanish, French, Dutch and
// Portuguese are built in; other languages get the closest match, falling
// back to English.
func WordBased(tag language.Tag) *Formatter {
	_, i, _ := wordMatcher.Match(tag)
	return wordFormatters[i]()
}
