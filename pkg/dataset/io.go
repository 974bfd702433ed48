package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	dterrors "github.com/matzehuels/datatree/pkg/errors"
)

// DefaultFilename is the dataset file used when no path is given.
const DefaultFilename = "dataset.json"

// ReadJSON decodes a dataset from r.
//
// The input must be a JSON object of JSON objects of JSON arrays of strings:
//
//	{
//	  "Fruit": {"Citrus": ["Lemon", "Lime"], "Berries": ["Strawberry"]},
//	  "Vegetables": {"Roots": ["Carrot"]}
//	}
//
// Key order is preserved at every level. Shape violations return an error
// with code INVALID_DATASET naming the offending category or subcategory.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var d Dataset
	if err := d.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return d, nil
}

// WriteJSON encodes d as indented JSON and writes it to w.
// The output can be re-read with [ReadJSON] and yields an identical dataset.
func WriteJSON(d Dataset, w io.Writer) error {
	raw, err := d.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "    "); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

// Import reads a dataset file at path.
//
// A missing file returns an error with code FILE_NOT_FOUND; decoding errors
// are returned as from [ReadJSON], prefixed with the path.
func Import(path string) (Dataset, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, dterrors.Wrap(dterrors.ErrCodeFileNotFound, err, "dataset %s does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	d, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Export writes d to path, replacing any existing file.
func Export(d Dataset, path string) error {
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
