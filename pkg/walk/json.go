package walk

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON encodes a report as indented JSON and writes it to w.
func WriteJSON(r *Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a report to a JSON file at path.
func ExportJSON(r *Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(r, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadJSON decodes a report written by [WriteJSON].
func ReadJSON(r io.Reader) (*Report, error) {
	var report Report
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &report, nil
}
