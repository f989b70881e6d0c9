package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_HappyPath(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Record
	}{
		{"LineAndColumn", "foo.txt:12:5\n", []Record{{Path: "foo.txt", Line: 11, Column: 4}}},
		{"PathOnly", "foo.txt\n", []Record{{Path: "foo.txt"}}},
		{"LineOnly", "foo.txt:3", []Record{{Path: "foo.txt", Line: 2}}},
		{
			"MultipleRecordsSkipEmptyLines",
			"/a/b.go:1:1\n\n/c d/e.go:40\n\n",
			[]Record{{Path: "/a/b.go"}, {Path: "/c d/e.go", Line: 39}},
		},
		{"CRLF", "x.go:2:2\r\n", []Record{{Path: "x.go", Line: 1, Column: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	for _, raw := range []string{"", "\n", "\n\n\n"} {
		_, err := Parse(raw)
		var empty *EmptyResultError
		assert.True(t, errors.As(err, &empty), "raw=%q", raw)
	}
}

func TestParse_InvalidLocation(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
	}{
		{"ZeroLine", "foo.txt:0:1\n", "line"},
		{"ZeroColumn", "foo.txt:1:0\n", "column"},
		{"NegativeLine", "foo.txt:-4\n", "line"},
		{"NonNumeric", "foo.txt:abc\n", "line"},
		{"EmptyLine", "foo.txt:\n", "line"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			var invalid *InvalidLocationError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.field, invalid.Field)
			assert.Equal(t, 1, invalid.Line)
		})
	}
}

func TestParse_IgnoresFieldsAfterColumn(t *testing.T) {
	got, err := Parse("a.go:1:2:match: text\n")
	require.NoError(t, err)
	assert.Equal(t, []Record{{Path: "a.go", Line: 0, Column: 1}}, got)
}
