// internal/parser/parser.go
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// RawRecord maps a normalized header name to the cell value of one CSV row.
type RawRecord map[string]string

// File is the fully-read result of parsing one upload: the header names as
// they appeared in the file, plus one RawRecord per data row in file order.
type File struct {
	Headers []string
	Records []RawRecord
}

// NormalizeKey lowercases a header name and strips surrounding whitespace,
// so " Engagement_Rate " and "engagement_RATE" resolve to the same field.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// Parse reads the whole CSV before returning. The first row is the header;
// rows shorter than the header leave the trailing fields absent, and extra
// cells beyond the header are dropped.
func Parse(r io.Reader) (*File, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return &File{}, nil
	}

	headers := rows[0]
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = NormalizeKey(h)
	}

	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(RawRecord, len(keys))
		for i, key := range keys {
			if key == "" {
				continue
			}
			if i < len(row) {
				rec[key] = row[i]
			}
		}
		records = append(records, rec)
	}

	return &File{Headers: headers, Records: records}, nil
}
