package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// MarshalJSON encodes the dataset as an object of objects of string arrays,
// keeping insertion order at every level. Empty subcategories encode as [].
func (d Dataset) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(&buf, c.Name); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, s := range c.Subcategories {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(&buf, s.Name); err != nil {
				return nil, err
			}
			items := s.Items
			if items == nil {
				items = []string{}
			}
			data, err := json.Marshal(items)
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) error {
	data, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(data)
	buf.WriteByte(':')
	return nil
}

// UnmarshalJSON decodes a dataset, preserving key order.
//
// The input must be exactly a JSON object of JSON objects of JSON arrays of
// strings. A repeated key overwrites the earlier value but keeps the
// position where the key first appeared.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	out, err := decodeDataset(dec)
	if err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return dterrors.New(dterrors.ErrCodeInvalidDataset, "unexpected data after dataset object")
	}
	*d = out
	return nil
}

func decodeDataset(dec *json.Decoder) (Dataset, error) {
	if err := expectDelim(dec, '{', "dataset"); err != nil {
		return nil, err
	}
	out := Dataset{}
	for dec.More() {
		name, err := readKey(dec, "dataset")
		if err != nil {
			return nil, err
		}
		subs, err := decodeCategory(dec, name)
		if err != nil {
			return nil, err
		}
		out.Put(Category{Name: name, Subcategories: subs})
	}
	if err := expectDelim(dec, '}', "dataset"); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeCategory(dec *json.Decoder, category string) ([]Subcategory, error) {
	where := fmt.Sprintf("category %q", category)
	if err := expectDelim(dec, '{', where); err != nil {
		return nil, err
	}
	c := Category{Name: category, Subcategories: []Subcategory{}}
	for dec.More() {
		name, err := readKey(dec, where)
		if err != nil {
			return nil, err
		}
		items, err := decodeItems(dec, category, name)
		if err != nil {
			return nil, err
		}
		c.Put(Subcategory{Name: name, Items: items})
	}
	if err := expectDelim(dec, '}', where); err != nil {
		return nil, err
	}
	return c.Subcategories, nil
}

func decodeItems(dec *json.Decoder, category, sub string) ([]string, error) {
	where := fmt.Sprintf("subcategory %q in %q", sub, category)
	if err := expectDelim(dec, '[', where); err != nil {
		return nil, err
	}
	items := []string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, dterrors.Wrap(dterrors.ErrCodeInvalidDataset, err, "decode %s", where)
		}
		item, ok := tok.(string)
		if !ok {
			return nil, dterrors.New(dterrors.ErrCodeInvalidDataset, "%s: item must be a string, got %s", where, describe(tok))
		}
		items = append(items, item)
	}
	if err := expectDelim(dec, ']', where); err != nil {
		return nil, err
	}
	return items, nil
}

func readKey(dec *json.Decoder, where string) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", dterrors.Wrap(dterrors.ErrCodeInvalidDataset, err, "decode %s", where)
	}
	key, ok := tok.(string)
	if !ok {
		return "", dterrors.New(dterrors.ErrCodeInvalidDataset, "%s: expected key, got %s", where, describe(tok))
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, want json.Delim, where string) error {
	tok, err := dec.Token()
	if err != nil {
		return dterrors.Wrap(dterrors.ErrCodeInvalidDataset, err, "decode %s", where)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return dterrors.New(dterrors.ErrCodeInvalidDataset, "%s: expected %s, got %s", where, delimName(want), describe(tok))
	}
	return nil
}

func delimName(d json.Delim) string {
	switch d {
	case '{', '}':
		return "object"
	case '[', ']':
		return "array"
	}
	return string(d)
}

func describe(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return "null"
	case json.Delim:
		if v == '{' || v == '[' {
			return delimName(v)
		}
		return "end of " + delimName(v)
	case string:
		return fmt.Sprintf("string %q", v)
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	}
	return fmt.Sprintf("%T", tok)
}
