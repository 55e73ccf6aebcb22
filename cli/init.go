package cli

import (
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"go-currency-bank/config"
	"io/fs"
	"os"
)

func newInitRatesCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init-rates FILE",
		Short: "Write an example rate table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("checking %s: %w", path, err)
				}
			}
			if err := config.SaveRates(path, config.DefaultRates()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote rate table to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
