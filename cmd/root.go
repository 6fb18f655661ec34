package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"quadro/internal/app"
	"quadro/internal/config"
	"quadro/internal/logging"
	"quadro/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "quadro",
	Short: "Quadro - a collaborative terminal kanban board",
	Long:  `Quadro is a terminal kanban board: sign in, pick a group, and move tasks between columns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := logging.Init(cfg.Log.Path); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		application, err := app.New(ctx, cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		if err := application.Auth.Restore(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		model := tui.InitialModel(application)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}
