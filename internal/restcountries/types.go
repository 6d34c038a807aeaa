package restcountries

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one country as returned by /v3.1/name. Every field is optional:
// pointers and slices are nil and ordered maps are empty when the service omits them.
type Record struct {
	Name       *Name                `json:"name"`
	Capital    []string             `json:"capital"`
	Flags      *Flags               `json:"flags"`
	Currencies OrderedMap[Currency] `json:"currencies"`
	Region     *string              `json:"region"`
	Subregion  *string              `json:"subregion"`
	Population *int64               `json:"population"`
	Languages  OrderedMap[string]   `json:"languages"`
	Area       *float64             `json:"area"`
	Timezones  []string             `json:"timezones"`
	Car        *Car                 `json:"car"`
	Continents []string             `json:"continents"`
}

type Name struct {
	Common   *string `json:"common"`
	Official *string `json:"official"`
}

type Flags struct {
	Svg *string `json:"svg"`
	Png *string `json:"png"`
	Alt *string `json:"alt"`
}

type Currency struct {
	Name   *string `json:"name"`
	Symbol *string `json:"symbol"`
}

type Car struct {
	Side *string `json:"side"`
}

type Entry[T any] struct {
	Key   string
	Value T
}

// OrderedMap is a JSON object that keeps its keys in document order.
type OrderedMap[T any] struct {
	Entries []Entry[T]
}

func (m OrderedMap[T]) Len() int {
	return len(m.Entries)
}

func (m OrderedMap[T]) Values() []T {
	out := make([]T, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.Value)
	}
	return out
}

func (m *OrderedMap[T]) UnmarshalJSON(data []byte) error {
	m.Entries = nil
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var value T
		err = dec.Decode(&value)
		if err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		m.Entries = append(m.Entries, Entry[T]{Key: key, Value: value})
	}

	_, err = dec.Token()
	return err
}

func (m OrderedMap[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m.Entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
