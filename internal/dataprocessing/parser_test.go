package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantRecords int
		wantDropped int
	}{
		{
			name:        "well formed",
			input:       "Name,Amount\nAcme,100\nGlobex,200\n",
			wantRecords: 2,
			wantDropped: 0,
		},
		{
			name:        "mismatched rows dropped",
			input:       "Name,Amount\nAcme,100\nbroken\nGlobex,200,extra\n",
			wantRecords: 1,
			wantDropped: 2,
		},
		{
			name:        "blank lines skipped",
			input:       "Name,Amount\n\nAcme,100\n\r\n\nGlobex,200\n",
			wantRecords: 2,
			wantDropped: 0,
		},
		{
			name:        "header only",
			input:       "Name,Amount\n",
			wantRecords: 0,
			wantDropped: 0,
		},
		{
			name:        "empty input",
			input:       "",
			wantRecords: 0,
			wantDropped: 0,
		},
		{
			name:        "crlf line endings",
			input:       "Name,Amount\r\nAcme,100\r\n",
			wantRecords: 1,
			wantDropped: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseText(tt.input)
			assert.Len(t, result.Records, tt.wantRecords)
			assert.Equal(t, tt.wantDropped, result.RowsDropped)
		})
	}
}

func TestParseTextQuotedFields(t *testing.T) {
	input := "Name,Description,Amount\n" +
		`Acme,"builds rockets, engines and fuel",100` + "\n"

	result := ParseText(input)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "Acme", rec.Get("Name"))
	assert.Equal(t, "builds rockets, engines and fuel", rec.Get("Description"))
	assert.Equal(t, "100", rec.Get("Amount"))
}

func TestParseTextPreservesColumnOrder(t *testing.T) {
	result := ParseText("C,A,B\n1,2,3\n")
	require.Len(t, result.Records, 1)
	assert.Equal(t, []string{"C", "A", "B"}, result.Records[0].Columns)
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "a,b,c",
			want: []string{"a", "b", "c"},
		},
		{
			name: "comma inside quotes",
			line: `a,"b, still b",c`,
			want: []string{"a", "b, still b", "c"},
		},
		{
			name: "trailing empty field",
			line: "a,b,",
			want: []string{"a", "b", ""},
		},
		{
			name: "whitespace trimmed",
			line: " a , b ",
			want: []string{"a", "b"},
		},
		{
			name: "wrapping quotes stripped",
			line: `"a","b"`,
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitLine(tt.line))
		})
	}
}

func TestParseFilesConcatenatesInOrder(t *testing.T) {
	blobs := []string{
		"Name,Amount\nFirst,1\nSecond,2\n",
		"Name,Amount\nThird,3\nbroken\n",
	}

	result := ParseFiles(context.Background(), nil, blobs)
	require.Len(t, result.Records, 3)
	assert.Equal(t, 1, result.RowsDropped)

	assert.Equal(t, "First", result.Records[0].Get("Name"))
	assert.Equal(t, "Second", result.Records[1].Get("Name"))
	assert.Equal(t, "Third", result.Records[2].Get("Name"))
}
