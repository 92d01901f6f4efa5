package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"InsightDesk/internal/model"
)

// PreviewRows is the number of transaction rows kept for display.
const PreviewRows = 20

const qtyColumn = "qty"

// SummarizeTransactions reads an optional transactions CSV for display.
// Any error means the caller should warn and carry on without it.
func SummarizeTransactions(r io.Reader) (model.TransactionsSummary, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return model.TransactionsSummary{}, ErrEmptyFile
	}
	if err != nil {
		return model.TransactionsSummary{}, fmt.Errorf("read header: %w", err)
	}
	header = cleanHeader(header)

	s := model.TransactionsSummary{Columns: header}
	qty := indexOf(header, qtyColumn)
	s.HasQty = qty >= 0

	var total float64
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.TransactionsSummary{}, fmt.Errorf("read row: %w", err)
		}
		s.Rows++
		if len(s.Preview) < PreviewRows {
			s.Preview = append(s.Preview, row)
		}
		if !s.HasQty {
			continue
		}
		cell := strings.TrimSpace(row[qty])
		if cell == "" {
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return model.TransactionsSummary{}, fmt.Errorf("row %d: qty %q is not a number", s.Rows, cell)
		}
		total += v
	}
	s.TotalUnits = int64(math.Trunc(total))
	return s, nil
}
