package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Writer builds header-keyed CSV output, the mirror of Parser
type Writer struct {
	headers []string
	buf     bytes.Buffer
	csv     *csv.Writer
}

// NewWriter creates a writer that emits the given header row first
func NewWriter(headers []string) (*Writer, error) {
	w := &Writer{headers: headers}
	w.csv = csv.NewWriter(&w.buf)
	if err := w.csv.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return w, nil
}

// WriteRow writes one data row. Missing keys become empty cells.
func (w *Writer) WriteRow(data map[string]string) error {
	record := make([]string, len(w.headers))
	for i, h := range w.headers {
		record[i] = data[h]
	}
	return w.csv.Write(record)
}

// Bytes flushes and returns the accumulated CSV content
func (w *Writer) Bytes() ([]byte, error) {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}
