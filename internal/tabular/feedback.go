// Package tabular reads and writes the CSV files exchanged with the dashboards.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"InsightDesk/internal/model"
)

// ErrEmptyFile is returned when an upload has no header row.
var ErrEmptyFile = errors.New("file is empty")

// MissingColumnError reports a required column absent from the header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

// ReadFeedback parses a feedback CSV. The header must contain comment_text;
// every other column is carried through untouched. Nothing is returned on error.
func ReadFeedback(r io.Reader) (model.FeedbackTable, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return model.FeedbackTable{}, ErrEmptyFile
	}
	if err != nil {
		return model.FeedbackTable{}, fmt.Errorf("read header: %w", err)
	}
	header = cleanHeader(header)

	idx := indexOf(header, model.CommentColumn)
	if idx < 0 {
		return model.FeedbackTable{}, &MissingColumnError{Column: model.CommentColumn}
	}

	tbl := model.FeedbackTable{Header: header, CommentIndex: idx}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.FeedbackTable{}, fmt.Errorf("read row: %w", err)
		}
		tbl.Records = append(tbl.Records, model.FeedbackRecord{
			CommentText: row[idx],
			Cells:       row,
		})
	}
	return tbl, nil
}

// WriteLabeled writes the labeled table: original columns, then sentiment
// (and topic when tagged). An existing sentiment or topic column is overwritten.
func WriteLabeled(w io.Writer, t model.LabeledTable) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range t.Records {
		if err := cw.Write(t.Row(r)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// cleanHeader trims whitespace and a UTF-8 byte order mark left by spreadsheet exports.
func cleanHeader(h []string) []string {
	out := make([]string, len(h))
	for i, c := range h {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func indexOf(cols []string, name string) int {
	for i, c := range cols {
		if c == name {
			return i
		}
	}
	return -1
}
