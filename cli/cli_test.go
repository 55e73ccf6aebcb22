package cli

import (
	"bytes"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-currency-bank"
	"go-currency-bank/config"
	"os"
	"path/filepath"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeRates(t *testing.T, entries ...config.RateEntry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, config.SaveRates(path, &config.RateTable{Rates: entries}))
	return path
}

func TestReduce(t *testing.T) {
	rates := writeRates(t,
		config.RateEntry{From: "CHF", To: "USD", Rate: 2},
		config.RateEntry{From: "GBP", To: "USD", Rate: 3},
	)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"same currency", []string{"reduce", "--to", "USD", "5:USD", "5:USD"}, "10 USD\n"},
		{"mixed", []string{"reduce", "--rates", rates, "--to", "USD", "5:USD", "10:CHF"}, "10 USD\n"},
		{"times", []string{"reduce", "--to", "CHF", "--times", "3", "5:CHF"}, "15 CHF\n"},
		{"truncation", []string{"reduce", "--rates", rates, "--to", "USD", "1 GBP"}, "0 USD\n"},
		{"three terms", []string{"reduce", "--rates", rates, "--to", "USD", "--times", "2", "1:USD", "2:CHF", "3:GBP"}, "6 USD\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestReduce_Errors(t *testing.T) {
	rates := writeRates(t, config.RateEntry{From: "CHF", To: "USD", Rate: 2})

	_, err := run(t, "reduce", "--rates", rates, "--to", "CHF", "5:USD")
	assert.True(t, errors.Is(err, money.ErrRateNotFound))

	_, err = run(t, "reduce", "--to", "USD", "five:USD")
	assert.True(t, errors.Is(err, money.ErrBadMoney))

	_, err = run(t, "reduce", "--to", "USD", "--times", "2", "18446744073709551615:USD")
	assert.True(t, errors.Is(err, money.ErrOverflow))

	_, err = run(t, "reduce", "5:USD")
	assert.Error(t, err, "--to is required")

	_, err = run(t, "reduce", "--rates", filepath.Join(t.TempDir(), "missing.yaml"), "--to", "USD", "5:USD")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRate(t *testing.T) {
	rates := writeRates(t, config.RateEntry{From: "CHF", To: "USD", Rate: 2})

	out, err := run(t, "rate", "--rates", rates, "CHF", "USD")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	out, err = run(t, "rate", "XYZ", "XYZ")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	_, err = run(t, "rate", "--rates", rates, "USD", "CHF")
	assert.True(t, errors.Is(err, money.ErrRateNotFound))
}

func TestInitRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")

	out, err := run(t, "init-rates", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote rate table")

	table, err := config.LoadRates(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRates(), table)

	_, err = run(t, "init-rates", path)
	assert.Error(t, err)

	_, err = run(t, "init-rates", "--force", path)
	assert.NoError(t, err)
}

func TestParseExpression(t *testing.T) {
	expr, err := parseExpression([]string{"1:USD", "2:CHF", "3:GBP"})
	require.NoError(t, err)
	assert.Equal(t, "((1 USD + 2 CHF) + 3 GBP)", expr.String())
}
