package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func phonemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phonemes",
		Short: "Inspect or reset the phoneme order",
	}
	cmd.AddCommand(phonemesExportCmd(), phonemesResetCmd())
	return cmd
}

func phonemesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the phoneme order as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := appCtx.Settings.Phonemes(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(list)
		},
	}
}

func phonemesResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the built-in phoneme order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := appCtx.Settings.ResetPhonemeOrder(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Phoneme order reset (%d phonemes)\n", len(list))
			return nil
		},
	}
}
