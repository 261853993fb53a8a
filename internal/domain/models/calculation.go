package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Input carries the raw, unparsed field values typed by the user.
type Input map[string]string

// InputField is one labelled, already formatted input value.
type InputField struct {
	Label string
	Value string
}

// Inputs keeps input labels in display order. It is encoded as a JSON object
// whose key order matches the slice order.
type Inputs []InputField

// Add appends a label/value pair and returns the extended slice.
func (in Inputs) Add(label, value string) Inputs {
	return append(in, InputField{Label: label, Value: value})
}

// Get returns the value stored under label.
func (in Inputs) Get(label string) (string, bool) {
	for _, f := range in {
		if f.Label == label {
			return f.Value, true
		}
	}
	return "", false
}

// MarshalJSON encodes the pairs as an ordered JSON object.
func (in Inputs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range in {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Label)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order. Non-string
// values are kept in their literal JSON form.
func (in *Inputs) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*in = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("inputs: expected object, got %v", tok)
	}

	out := Inputs{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := tok.(string)
		if !ok {
			return fmt.Errorf("inputs: expected string key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			value = string(raw)
		}
		out = append(out, InputField{Label: label, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*in = out
	return nil
}

// Metric is a single computed quantity. Value keeps full precision while
// Display carries the rounding shown to the user.
type Metric struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
	Unit    string  `json:"unit,omitempty"`
}

// Result is the immutable output of one formula evaluation.
type Result struct {
	ThemeID         string   `json:"themeId"`
	ThemeName       string   `json:"themeName"`
	CalculationType string   `json:"calculationType"`
	Inputs          Inputs   `json:"inputs"`
	Metrics         []Metric `json:"metrics"`
	Summary         string   `json:"result"`
}

// Metric looks up a metric by key.
func (r Result) Metric(key string) (Metric, bool) {
	for _, m := range r.Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}
