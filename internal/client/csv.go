// Package client implements the Client collaborator: the per-tick tracker
// loop and the CSV prediction writer (spec §4.7, §6).
package client

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"multilat/internal/geometry"
)

// CSVWriter emits one row per tick where tracking produced a prediction
// (spec §6's Client output: header `timestamp, x, y, z`).
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter wraps w and writes the header row immediately.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp", "x", "y", "z"}); err != nil {
		return nil, fmt.Errorf("client: write csv header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("client: flush csv header: %w", err)
	}
	return &CSVWriter{w: cw}, nil
}

// WriteRow appends one prediction row and flushes it immediately so a
// killed process loses at most the in-flight row.
func (c *CSVWriter) WriteRow(ts time.Time, pos geometry.Vector3) error {
	row := []string{
		ts.Format(time.RFC3339Nano),
		strconv.FormatFloat(pos.X, 'f', -1, 64),
		strconv.FormatFloat(pos.Y, 'f', -1, 64),
		strconv.FormatFloat(pos.Z, 'f', -1, 64),
	}
	if err := c.w.Write(row); err != nil {
		return fmt.Errorf("client: write csv row: %w", err)
	}
	c.w.Flush()
	return c.w.Error()
}
