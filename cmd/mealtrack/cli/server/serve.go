package server

import (
	"context"
	"fmt"

	"github.com/nivecher/meal-expense-tracker-sub003/internal/agent"
	"github.com/spf13/cobra"

	config "github.com/nivecher/meal-expense-tracker-sub003/internal/config/server"
)

func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Meal Expense Tracker web service",
		Long:  `Start the Meal Expense Tracker web service`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			agent := agent.NewAgent(cfg)
			if err := agent.Serve(context.Background()); err != nil {
				return err
			}

			return nil
		},
	}

	return cmd
}
