package loader

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one decoded CSV record keyed by header column.
type Row map[string]string

// Record is a Row with the line it started on, for error reporting.
type Record struct {
	Line int
	Row  Row
}

var ErrNoHeader = errors.New("csv has no header row")

const utf8BOM = "\uFEFF"

// ReadCSV reads the whole file at path into records in file order.
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeCSV(f)
}

// DecodeCSV decodes header-delimited CSV from r. Short rows leave the
// missing columns empty; extra fields are ignored. A CRLF inside a quoted
// field is returned as "\n", so CRLF and LF exports load identically.
func DecodeCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		header[i] = strings.TrimSpace(h)
	}

	var out []Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(fields) {
				row[col] = fields[i]
			} else {
				row[col] = ""
			}
		}
		out = append(out, Record{Line: line, Row: row})
	}
	return out, nil
}
