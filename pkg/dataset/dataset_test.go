package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecords(t *testing.T) {
	ds, err := FromRecords(
		[]string{"Year", "Code", "Deaths"},
		[][]string{
			{"1990", "AFG", "12"},
			{"2000", "NA", "3"},
			{"2010"},
		},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"Year", "Code", "Deaths"}, ds.Columns())
	assert.Equal(t, 3, ds.RowCount())
	assert.False(t, ds.Empty())
	assert.True(t, ds.HasColumn("Code"))
	assert.False(t, ds.HasColumn("Nonexistent"))

	// "NA" is a null marker, and the short last row is padded with nulls.
	assert.True(t, ds.Row(1)[1].Null)
	assert.True(t, ds.Row(2)[1].Null)
	assert.True(t, ds.Row(2)[2].Null)
	assert.Equal(t, "AFG", ds.Row(0)[1].Raw)
}

func TestFromRecords_TooManyFields(t *testing.T) {
	_, err := FromRecords([]string{"Year"}, [][]string{{"1990", "extra"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1 fields, saw 2")
}

func TestFromRecords_EmptyHeader(t *testing.T) {
	_, err := FromRecords(nil, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestFromRecords_CustomNullMarkers(t *testing.T) {
	ds, err := FromRecords([]string{"Code"}, [][]string{{""}, {"-"}}, []string{"-"})
	require.NoError(t, err)

	assert.False(t, ds.Row(0)[0].Null)
	assert.True(t, ds.Row(1)[0].Null)
}

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{"unique", []string{"Year", "Code"}, []string{"Year", "Code"}},
		{"repeated", []string{"A", "A", "A"}, []string{"A", "A.1", "A.2"}},
		{"blank", []string{"Year", " "}, []string{"Year", "Unnamed: 1"}},
		{"collision with suffix", []string{"A", "A.1", "A"}, []string{"A", "A.1", "A.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeHeader(tt.header))
		})
	}
}

func TestNullCounts(t *testing.T) {
	ds, err := FromRecords(
		[]string{"Year", "Code"},
		[][]string{{"", "AFG"}, {"2000", ""}, {"2010", "null"}},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Year": 1, "Code": 2}, ds.NullCounts())

	n, err := ds.NullCount("Code")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = ds.NullCount("Nonexistent")
	assert.ErrorIs(t, err, ErrColumnNotFound)
	assert.Contains(t, err.Error(), "Nonexistent")
}

func TestDistinctCount(t *testing.T) {
	ds, err := FromRecords(
		[]string{"Year", "Code"},
		[][]string{{"1990", "AFG"}, {"1990", ""}, {"2000", "ALB"}, {"2010", ""}},
		nil,
	)
	require.NoError(t, err)

	years, err := ds.DistinctCount("Year")
	require.NoError(t, err)
	assert.Equal(t, 3, years)

	// Nulls are not counted as a value.
	codes, err := ds.DistinctCount("Code")
	require.NoError(t, err)
	assert.Equal(t, 2, codes)

	_, err = ds.DistinctCount("Nonexistent")
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestDuplicateRows(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
		want    []int
	}{
		{
			name:    "no duplicates",
			records: [][]string{{"1990", "AFG"}, {"1990", "ALB"}},
			want:    nil,
		},
		{
			name:    "exact duplicate",
			records: [][]string{{"1990", "AFG"}, {"2000", "ALB"}, {"1990", "AFG"}, {"1990", "AFG"}},
			want:    []int{2, 3},
		},
		{
			name:    "nulls compare equal",
			records: [][]string{{"1990", ""}, {"1990", "NaN"}},
			want:    []int{1},
		},
		{
			name:    "field boundaries matter",
			records: [][]string{{"ab", "c"}, {"a", "bc"}},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := FromRecords([]string{"Year", "Code"}, tt.records, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ds.DuplicateRows())
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrEmptyData, ErrFileNotFound))
	assert.False(t, errors.Is(ErrColumnNotFound, ErrEmptyData))
}
