package backtest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ReadReturns loads a ReturnSeries from CSV. The return is taken from the
// last column of each record, as a decimal (0.01 = 1%). A first record whose
// last column does not parse is treated as a header.
func ReadReturns(r io.Reader) (*ReturnSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		out  []float64
		line int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		if len(rec) == 0 {
			continue
		}

		field := strings.TrimSpace(rec[len(rec)-1])
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			if line == 1 {
				continue
			}
			return nil, fmt.Errorf("line %d: bad return %q: %w", line, field, err)
		}
		if v <= -1 {
			return nil, fmt.Errorf("line %d: return %g would make spot non-positive", line, v)
		}
		out = append(out, v)
	}
	return &ReturnSeries{Returns: out}, nil
}

// ReadReturnsFile is ReadReturns on a file path.
func ReadReturnsFile(path string) (*ReturnSeries, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	s, err := ReadReturns(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
