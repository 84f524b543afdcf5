package spi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var errEmptyPropertyKey = errors.New("empty property key")

// Property is a single application property.
type Property struct {
	Key   string
	Value string
}

// Properties is an insertion-ordered set of application properties.
// It encodes to and decodes from a JSON object, keeping the key order.
type Properties []Property

// NewProperties builds properties from alternating key and value arguments.
func NewProperties(kv ...string) Properties {
	p := make(Properties, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		p = p.Set(kv[i], kv[i+1])
	}

	return p
}

// Get returns the value stored for key.
func (p Properties) Get(key string) (string, bool) {
	for _, prop := range p {
		if prop.Key == key {
			return prop.Value, true
		}
	}

	return "", false
}

// Set stores value for key, replacing the value in place if key is present.
func (p Properties) Set(key, value string) Properties {
	for i := range p {
		if p[i].Key == key {
			p[i].Value = value

			return p
		}
	}

	return append(p, Property{Key: key, Value: value})
}

func (p Properties) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, prop := range p {
		if prop.Key == "" {
			return nil, fmt.Errorf("%w at position %d", errEmptyPropertyKey, i)
		}

		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(prop.Key)
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(prop.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if tok == nil {
		*p = nil

		return nil
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected JSON object, got %v", tok)
	}

	result := Properties{}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		key, _ := tok.(string)

		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("properties: value of %q: %w", key, err)
		}

		result = result.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = result

	return nil
}
