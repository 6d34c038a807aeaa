package country

import (
	"encoding/json"
	"testing"

	"countrylookup/internal/restcountries"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func decodeRecord(t *testing.T, body string) restcountries.Record {
	t.Helper()
	var r restcountries.Record
	err := json.Unmarshal([]byte(body), &r)
	require.NoError(t, err)
	return r
}

func TestNewCardFull(t *testing.T) {
	record := decodeRecord(t, `{
		"name": {"common": "China", "official": "People's Republic of China"},
		"capital": ["Beijing"],
		"flags": {"png": "https://flagcdn.com/w320/cn.png", "svg": "https://flagcdn.com/cn.svg", "alt": "The flag of China"},
		"currencies": {"CNY": {"name": "Chinese yuan", "symbol": "¥"}},
		"region": "Asia",
		"subregion": "Eastern Asia",
		"population": 1331639453,
		"languages": {"zho": "Chinese"},
		"area": 9706961,
		"timezones": ["UTC+08:00"],
		"car": {"side": "right"},
		"continents": ["Asia"]
	}`)

	expected := Card{
		FlagURL:      "https://flagcdn.com/cn.svg",
		FlagAlt:      "The flag of China",
		Name:         "China",
		OfficialName: "People's Republic of China",
		Capital:      "Beijing",
		Currency:     "Chinese yuan (¥)",
		Region:       "Asia",
		Subregion:    "Eastern Asia",
		Continent:    "Asia",
		Population:   "1,331,639,453",
		Languages:    "Chinese",
		Area:         "9,706,961 km²",
		DrivingSide:  "Right",
		Timezones:    "UTC+08:00",
	}

	diff := cmp.Diff(expected, NewCard(record))
	if diff != "" {
		t.Fatalf("card mismatch (-want +got):\n%s", diff)
	}
}

func TestNewCardEmptyRecord(t *testing.T) {
	card := NewCard(restcountries.Record{})

	expected := Card{
		FlagURL:      "",
		FlagAlt:      "Flag of N/A",
		Name:         NotAvailable,
		OfficialName: NotAvailable,
		Capital:      NotAvailable,
		Currency:     NotAvailable,
		Region:       NotAvailable,
		Subregion:    "",
		Continent:    NotAvailable,
		Population:   NotAvailable,
		Languages:    NotAvailable,
		Area:         NotAvailable,
		DrivingSide:  NotAvailable,
		Timezones:    NotAvailable,
	}
	diff := cmp.Diff(expected, card)
	if diff != "" {
		t.Fatalf("card mismatch (-want +got):\n%s", diff)
	}

	for _, field := range card.Fields() {
		require.Equal(t, NotAvailable, field.Value, field.Label)
	}
}

func TestNewCardFallbacks(t *testing.T) {
	testCases := []struct {
		name  string
		body  string
		check func(t *testing.T, c Card)
	}{
		{
			name: "png flag when svg is missing",
			body: `{"name": {"common": "Chad"}, "flags": {"png": "https://flagcdn.com/w320/td.png"}}`,
			check: func(t *testing.T, c Card) {
				require.Equal(t, "https://flagcdn.com/w320/td.png", c.FlagURL)
				require.Equal(t, "Flag of Chad", c.FlagAlt)
			},
		},
		{
			name: "multiple capitals",
			body: `{"capital": ["Pretoria", "Bloemfontein", "Cape Town"]}`,
			check: func(t *testing.T, c Card) {
				require.Equal(t, "Pretoria, Bloemfontein, Cape Town", c.Capital)
			},
		},
		{
			name: "currencies keep service order and symbol fallback",
			body: `{"currencies": {"CHF": {"name": "Swiss franc", "symbol": "Fr."}, "XXX": {"name": "Nothing"}, "AAA": {"symbol": "$"}}}`,
			check: func(t *testing.T, c Card) {
				require.Equal(t, "Swiss franc (Fr.), Nothing (N/A), N/A ($)", c.Currency)
			},
		},
		{
			name: "empty currency object",
			body: `{"currencies": {}}`,
			check: func(t *testing.T, c Card) {
				require.Equal(t, NotAvailable, c.Currency)
			},
		},
		{
			name: "languages keep service order",
			body: `{"languages": {"nld": "Dutch", "fra": "French", "deu": "German"}}`,
			check: func(t *testing.T, c Card) {
				require.Equal(t, "Dutch, French, German", c.Languages)
			},
		},
		{
			name: "fractional area",
			body: `{"area": 0.44}`,
			check: func(t *testing.T, c Card) {
				require.Equal(t, "0.44 km²", c.Area)
			},
		},
		{
			name: "zero population is not available",
			body: `{"population": 0}`,
			check: func(t *testing.T, c Card) {
				require.Equal(t, NotAvailable, c.Population)
			},
		},
		{
			name: "empty capital list is not available",
			body: `{"capital": []}`,
			check: func(t *testing.T, c Card) {
				require.Equal(t, NotAvailable, c.Capital)
			},
		},
		{
			name: "subregion omitted when empty",
			body: `{"region": "Antarctic", "subregion": ""}`,
			check: func(t *testing.T, c Card) {
				require.Equal(t, "Antarctic", c.Region)
				require.Empty(t, c.Subregion)
			},
		},
		{
			name: "multiple continents and timezones",
			body: `{"continents": ["Europe", "Asia"], "timezones": ["UTC+02:00", "UTC+03:00"]}`,
			check: func(t *testing.T, c Card) {
				require.Equal(t, "Europe, Asia", c.Continent)
				require.Equal(t, "UTC+02:00, UTC+03:00", c.Timezones)
			},
		},
		{
			name: "left driving side",
			body: `{"car": {"side": "left"}}`,
			check: func(t *testing.T, c Card) {
				require.Equal(t, "Left", c.DrivingSide)
			},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			test.check(t, NewCard(decodeRecord(t, test.body)))
		})
	}
}

func TestFormatting(t *testing.T) {
	require.Equal(t, "1,331,639,453", FormatInt(1331639453))
	require.Equal(t, "357,114", FormatNumber(357114))
	require.Equal(t, "999", FormatNumber(999))
	require.Equal(t, "Right", CapitalizeFirst("right"))
	require.Equal(t, "Égalité", CapitalizeFirst("égalité"))
	require.Equal(t, "", CapitalizeFirst(""))
}

func TestNewCardsPreservesOrder(t *testing.T) {
	var records []restcountries.Record
	err := json.Unmarshal([]byte(`[
		{"name": {"common": "Guinea"}},
		{"name": {"common": "Equatorial Guinea"}},
		{"name": {"common": "Guinea-Bissau"}}
	]`), &records)
	require.NoError(t, err)

	cards := NewCards(records)
	require.Len(t, cards, 3)
	require.Equal(t, "Guinea", cards[0].Name)
	require.Equal(t, "Equatorial Guinea", cards[1].Name)
	require.Equal(t, "Guinea-Bissau", cards[2].Name)
}
