// Package country resolves the optional fields of a restcountries.Record into
// display strings. It is the only place where fallbacks are decided.
package country

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"countrylookup/internal/restcountries"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// NotAvailable is shown in place of any absent field.
const NotAvailable = "N/A"

// Card holds the display strings of one country. Subregion is the only field that
// may be empty, an empty Subregion means the badge is omitted.
type Card struct {
	FlagURL      string `json:"flag_url"`
	FlagAlt      string `json:"flag_alt"`
	Name         string `json:"name"`
	OfficialName string `json:"official_name"`
	Capital      string `json:"capital"`
	Currency     string `json:"currency"`
	Region       string `json:"region"`
	Subregion    string `json:"subregion,omitempty"`
	Continent    string `json:"continent"`
	Population   string `json:"population"`
	Languages    string `json:"languages"`
	Area         string `json:"area"`
	DrivingSide  string `json:"driving_side"`
	Timezones    string `json:"timezones"`
}

// Field is one labelled row of a card.
type Field struct {
	Label string
	Value string
}

// Fields returns the rows of the card grid in display order. The region row
// carries only the region, callers render Subregion next to it.
func (c Card) Fields() []Field {
	return []Field{
		{Label: "Official Name", Value: c.OfficialName},
		{Label: "Capital", Value: c.Capital},
		{Label: "Currency", Value: c.Currency},
		{Label: "Region", Value: c.Region},
		{Label: "Continent", Value: c.Continent},
		{Label: "Population", Value: c.Population},
		{Label: "Languages", Value: c.Languages},
		{Label: "Area", Value: c.Area},
		{Label: "Driving Side", Value: c.DrivingSide},
		{Label: "Timezones", Value: c.Timezones},
	}
}

func NewCard(r restcountries.Record) Card {
	var common, official *string
	if r.Name != nil {
		common = r.Name.Common
		official = r.Name.Official
	}
	name := stringOr(common, NotAvailable)

	var svg, png, alt *string
	if r.Flags != nil {
		svg, png, alt = r.Flags.Svg, r.Flags.Png, r.Flags.Alt
	}

	var side *string
	if r.Car != nil {
		side = r.Car.Side
	}

	card := Card{
		FlagURL:      stringOr(svg, stringOr(png, "")),
		FlagAlt:      stringOr(alt, fmt.Sprintf("Flag of %s", name)),
		Name:         name,
		OfficialName: stringOr(official, NotAvailable),
		Capital:      JoinOr(r.Capital, NotAvailable),
		Currency:     currencyText(r.Currencies),
		Region:       stringOr(r.Region, NotAvailable),
		Subregion:    stringOr(r.Subregion, ""),
		Continent:    JoinOr(r.Continents, NotAvailable),
		Population:   NotAvailable,
		Languages:    JoinOr(r.Languages.Values(), NotAvailable),
		Area:         NotAvailable,
		DrivingSide:  NotAvailable,
		Timezones:    JoinOr(r.Timezones, NotAvailable),
	}

	if r.Population != nil && *r.Population != 0 {
		card.Population = FormatInt(*r.Population)
	}
	if r.Area != nil && *r.Area != 0 {
		card.Area = FormatNumber(*r.Area) + " km²"
	}
	if side != nil && *side != "" {
		card.DrivingSide = CapitalizeFirst(*side)
	}

	return card
}

func NewCards(records []restcountries.Record) []Card {
	cards := make([]Card, 0, len(records))
	for _, r := range records {
		cards = append(cards, NewCard(r))
	}
	return cards
}

func currencyText(currencies restcountries.OrderedMap[restcountries.Currency]) string {
	parts := make([]string, 0, currencies.Len())
	for _, c := range currencies.Values() {
		parts = append(parts, fmt.Sprintf(
			"%s (%s)",
			stringOr(c.Name, NotAvailable),
			stringOr(c.Symbol, NotAvailable),
		))
	}
	return JoinOr(parts, NotAvailable)
}

// stringOr treats an empty string the same as an absent one.
func stringOr(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}
	return *value
}

// JoinOr joins the list with ", ", an empty list yields fallback.
func JoinOr(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return strings.Join(list, ", ")
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatInt groups thousands with en-US separators.
func FormatInt(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatNumber groups thousands with en-US separators and keeps at most three
// fraction digits.
func FormatNumber(n float64) string {
	return printer.Sprint(number.Decimal(n, number.MaxFractionDigits(3)))
}

func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
