package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jask/ipachat/internal/config"
	"github.com/jask/ipachat/internal/i18n"
)

func localeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locale [tag]",
		Short: "Show or change the UI locale",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				current := i18n.New(appCtx.Config.UI.Locale).Locale()
				supported := make([]string, 0, len(i18n.Supported()))
				for _, tag := range i18n.Supported() {
					supported = append(supported, tag.String())
				}
				fmt.Fprintf(out, "%s (supported: %s)\n", current, strings.Join(supported, ", "))
				return nil
			}

			matched := i18n.New(args[0]).Locale()
			cfg := appCtx.Config
			cfg.UI.Locale = matched.String()
			path := appCtx.ConfigPath
			if path == "" {
				path = config.Path()
			}
			if err := config.SaveFile(path, cfg); err != nil {
				return err
			}
			appCtx.Config = cfg
			appCtx.Logger.Info("locale changed", "locale", cfg.UI.Locale)
			fmt.Fprintf(out, "Locale set to %s\n", cfg.UI.Locale)
			return nil
		},
	}
}
