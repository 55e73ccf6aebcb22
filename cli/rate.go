package cli

import (
	"fmt"
	"github.com/go-kit/log"
	"github.com/spf13/cobra"
	"go-currency-bank"
)

func newRateCommand(logger func(*cobra.Command) log.Logger) *cobra.Command {
	var ratesFile string

	cmd := &cobra.Command{
		Use:   "rate FROM TO",
		Short: "Print the rate converting FROM into TO",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := loadBank(ratesFile, logger(cmd))
			if err != nil {
				return err
			}
			rate, err := bank.Rate(money.Currency(args[0]), money.Currency(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rate)
			return nil
		},
	}

	cmd.Flags().StringVar(&ratesFile, "rates", "", "YAML rate table")

	return cmd
}
