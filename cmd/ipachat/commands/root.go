package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/ipachat/internal/database/repository"
	"github.com/jask/ipachat/internal/i18n"
	"github.com/jask/ipachat/internal/tui"
)

var (
	configPath string
	muted      bool
	appCtx     *appContext
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	configPath, muted, appCtx = "", false, nil

	root := &cobra.Command{
		Use:           "ipachat",
		Short:         "Practice IPA phonemes by ear",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), configPath)
			if err != nil {
				return err
			}
			if muted {
				a.Audio.SetMuted(true)
			}
			appCtx = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			err := appCtx.Close()
			appCtx = nil
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettings(cmd.Context())
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/ipachat/config.toml)")
	root.PersistentFlags().BoolVar(&muted, "mute", false, "disable voice preview playback")

	root.AddCommand(phonemesCmd(), localeCmd(), resetCmd())
	return root
}

func runSettings(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var (
		language string
		phonemes []repository.Phoneme
	)
	app := tui.New(ctx, appCtx.Settings,
		tui.Bind(&language),
		tui.Bind(&phonemes),
		i18n.New(appCtx.Config.UI.Locale),
		appCtx.Logger,
	)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		appCtx.Logger.Error("settings screen exited", "error", err)
		return err
	}
	appCtx.Logger.Info("settings screen closed", "language", language, "phonemes", len(phonemes))
	return nil
}
