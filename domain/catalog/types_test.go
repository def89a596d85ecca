package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControversyFromCode(t *testing.T) {
	assert.Equal(t, NotControversial, ControversyFromCode(0))
	assert.Equal(t, Controversial, ControversyFromCode(1))
	assert.Equal(t, Controversial, ControversyFromCode(-3))
	assert.Equal(t, Controversial, ControversyFromCode(0.5))
}

func TestRelabelControversy_Total(t *testing.T) {
	cases := map[string]Controversy{
		"0":   NotControversial,
		"0.0": NotControversial,
		"1":   Controversial,
		"2":   Controversial,
		" 1 ": Controversial,
	}
	for in, want := range cases {
		got, err := RelabelControversy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestRelabelControversy_Idempotent(t *testing.T) {
	for _, raw := range []string{"0", "1"} {
		once, err := RelabelControversy(raw)
		require.NoError(t, err)
		twice, err := RelabelControversy(string(once))
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestRelabelControversy_RejectsGarbage(t *testing.T) {
	_, err := RelabelControversy("maybe")
	assert.Error(t, err)
}

func TestTable_Methods(t *testing.T) {
	table := NewTable([]Record{
		{Method: "Transit"},
		{Method: "Radial Velocity"},
		{Method: "Transit"},
	})
	assert.Equal(t, []string{"Radial Velocity", "Transit"}, table.Methods())
	assert.Equal(t, 3, table.Len())

	var empty *Table
	assert.True(t, empty.IsEmpty())
	assert.Nil(t, empty.Methods())
}

func TestCleaningReport_Counts(t *testing.T) {
	r := CleaningReport{RawRows: 200, CompleteRows: 150, RetainedRows: 120}
	assert.Equal(t, 50, r.IncompleteRows())
	assert.Equal(t, 30, r.RareMethodRows())
}
