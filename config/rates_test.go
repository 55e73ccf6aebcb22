package config

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-currency-bank"
	"os"
	"path/filepath"
	"testing"
)

func TestRatesRoundTrip(t *testing.T) {
	table := DefaultRates()
	table.Rates = append(table.Rates, RateEntry{From: "GBP", To: "USD", Rate: 3})

	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, SaveRates(path, table))

	got, err := LoadRates(path)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestRatesYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, SaveRates(path, DefaultRates()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "from: CHF")
	assert.Contains(t, contents, "to: USD")
	assert.Contains(t, contents, "rate: 2")
}

func TestLoadRatesNotFound(t *testing.T) {
	_, err := LoadRates(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRatesInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"zero rate", "rates:\n  - from: CHF\n    to: USD\n    rate: 0\n"},
		{"missing currency", "rates:\n  - from: CHF\n    rate: 2\n"},
		{"negative rate", "rates:\n  - from: CHF\n    to: USD\n    rate: -2\n"},
		{"not yaml", "rates: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rates.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.contents), 0o644))
			_, err := LoadRates(path)
			assert.Error(t, err)
		})
	}
}

func TestRateTable_Validate(t *testing.T) {
	table := RateTable{Rates: []RateEntry{
		{From: "CHF", To: "USD", Rate: 0},
		{From: "", To: "USD", Rate: 1},
	}}
	err := table.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, money.ErrInvalidRate))
	assert.Contains(t, err.Error(), "rate 1: missing currency")
}

func TestRateTable_Pairs(t *testing.T) {
	table := RateTable{Rates: []RateEntry{
		{From: "CHF", To: "USD", Rate: 2},
		{From: "GBP", To: "USD", Rate: 3},
		{From: "CHF", To: "USD", Rate: 4},
	}}
	assert.Equal(t, map[money.Pair]money.Rate{
		{From: "CHF", To: "USD"}: 4,
		{From: "GBP", To: "USD"}: 3,
	}, table.Pairs())
}

func TestRateTable_Bank(t *testing.T) {
	bank, err := DefaultRates().Bank()
	require.NoError(t, err)

	got, err := bank.Reduce(money.New(5, "USD").Plus(money.New(10, "CHF")), "USD")
	require.NoError(t, err)
	assert.Equal(t, money.New(10, "USD"), got)
}
