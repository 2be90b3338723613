package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the selected language, voice and phoneme order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset: pass --yes to confirm")
			}
			if err := appCtx.Maintenance.Reset(cmd.Context()); err != nil {
				return err
			}
			appCtx.Logger.Info("settings reset")
			fmt.Fprintln(cmd.OutOrStdout(), "Settings reset")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return cmd
}
