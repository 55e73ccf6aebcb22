package config

import (
	"errors"
	"fmt"
	"go-currency-bank"
	"gopkg.in/yaml.v3"
	"os"
)

// RateTable is the YAML file of static exchange rates.
type RateTable struct {
	Rates []RateEntry `yaml:"rates"`
}

// RateEntry is one directional rate: amounts in From divide by Rate to give To.
type RateEntry struct {
	From money.Currency `yaml:"from"`
	To   money.Currency `yaml:"to"`
	Rate money.Rate     `yaml:"rate"`
}

// LoadRates reads and validates a rate table from disk.
func LoadRates(path string) (*RateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rates: %w", err)
	}
	var table RateTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing rates: %w", err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return &table, nil
}

// SaveRates writes a rate table to a YAML file.
func SaveRates(path string, table *RateTable) error {
	data, err := yaml.Marshal(table)
	if err != nil {
		return fmt.Errorf("marshaling rates: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rates: %w", err)
	}
	return nil
}

// DefaultRates returns a small example table.
func DefaultRates() *RateTable {
	return &RateTable{
		Rates: []RateEntry{
			{From: "CHF", To: "USD", Rate: 2},
		},
	}
}

// Validate reports every malformed entry.
func (t *RateTable) Validate() error {
	var errs []error
	for i, e := range t.Rates {
		if e.From == "" || e.To == "" {
			errs = append(errs, fmt.Errorf("rate %d: missing currency", i))
		}
		if e.Rate == 0 {
			errs = append(errs, fmt.Errorf("rate %d [%v/%v]: %w", i, e.From, e.To, money.ErrInvalidRate))
		}
	}
	return errors.Join(errs...)
}

// Pairs indexes the table by pair. Later entries for the same pair win.
func (t *RateTable) Pairs() map[money.Pair]money.Rate {
	pairs := make(map[money.Pair]money.Rate, len(t.Rates))
	for _, e := range t.Rates {
		pairs[money.Pair{From: e.From, To: e.To}] = e.Rate
	}
	return pairs
}

// Bank builds a money.Bank holding every rate in the table.
func (t *RateTable) Bank() (*money.Bank, error) {
	bank := money.NewBank()
	for _, e := range t.Rates {
		if err := bank.AddRate(e.From, e.To, e.Rate); err != nil {
			return nil, err
		}
	}
	return bank, nil
}
