package cli

import (
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"go-currency-bank"
	"go-currency-bank/config"
)

func newReduceCommand(logger func(*cobra.Command) log.Logger) *cobra.Command {
	var ratesFile string
	var to string
	var times uint64

	cmd := &cobra.Command{
		Use:   "reduce AMOUNT:CURRENCY...",
		Short: "Sum amounts, optionally scale them, and reduce the result to one currency",
		Example: `  bankctl reduce --rates rates.yaml --to USD 5:USD 10:CHF
  bankctl reduce --to CHF --times 3 5:CHF`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			expr, err := parseExpression(args)
			if err != nil {
				return err
			}
			if times != 1 {
				expr, err = expr.Times(money.Amount(times))
				if err != nil {
					return err
				}
			}

			bank, err := loadBank(ratesFile, logger(cmd))
			if err != nil {
				return err
			}

			level.Debug(logger(cmd)).Log("msg", "reducing", "expression", expr, "to", to)
			result, err := bank.Reduce(expr, money.Currency(to))
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&ratesFile, "rates", "", "YAML rate table (identity conversions only when empty)")
	cmd.Flags().StringVar(&to, "to", "", "target currency (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().Uint64Var(&times, "times", 1, "multiplier applied to the whole sum")

	return cmd
}

// parseExpression folds money literals into a left-nested sum: ((a + b) + c).
func parseExpression(args []string) (money.Expression, error) {
	var expr money.Expression
	for _, arg := range args {
		m, err := money.ParseMoney(arg)
		if err != nil {
			return nil, err
		}
		if expr == nil {
			expr = m
			continue
		}
		expr = expr.Plus(m)
	}
	return expr, nil
}

// loadBank builds a Bank from a rate table file, or an empty Bank when path is empty.
func loadBank(path string, logger log.Logger) (*money.Bank, error) {
	if path == "" {
		return money.NewBank(), nil
	}
	table, err := config.LoadRates(path)
	if err != nil {
		return nil, err
	}
	level.Debug(logger).Log("msg", "loaded rates", "file", path, "count", len(table.Rates))
	return table.Bank()
}
