// Package result parses the output written by the search scripts into
// open-file requests.
package result

import (
	"strconv"
	"strings"
)

// Record is one file to open. Line and Column are 0-based.
type Record struct {
	Path   string
	Line   int
	Column int
}

// Parse splits raw canary output into records. Each non-empty line is
// path[:line[:col]] with 1-based numbers, converted here to 0-based.
// Missing numbers default to the start of the file. Fields after the column
// (e.g. matched text) are ignored.
func Parse(raw string) ([]Record, error) {
	var records []Record
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		rec, err := parseLine(i+1, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, &EmptyResultError{}
	}
	return records, nil
}

func parseLine(lineNo int, line string) (Record, error) {
	fields := strings.Split(line, ":")
	if len(fields) > 3 {
		fields = fields[:3]
	}
	rec := Record{Path: fields[0]}

	if len(fields) > 1 {
		n, err := toZeroBased(lineNo, "line", fields[1])
		if err != nil {
			return Record{}, err
		}
		rec.Line = n
	}
	if len(fields) > 2 {
		n, err := toZeroBased(lineNo, "column", fields[2])
		if err != nil {
			return Record{}, err
		}
		rec.Column = n
	}
	return rec, nil
}

func toZeroBased(lineNo int, field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &InvalidLocationError{Line: lineNo, Field: field, Value: value, Cause: err}
	}
	if n-1 < 0 {
		return 0, &InvalidLocationError{Line: lineNo, Field: field, Value: value}
	}
	return n - 1, nil
}
