package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lankacivic/issue-tracker/internal/infrastructure/config"
	"github.com/lankacivic/issue-tracker/pkg/logger"
)

const serviceName = "issue-tracker"

var (
	envFile string

	cfg *config.Config
	log zerolog.Logger

	rootCmd = &cobra.Command{
		Use:           "issuetracker",
		Short:         "Civic issue tracker: HTTP API and admin commands",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}

			loaded, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			cfg = loaded

			log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Service: serviceName,
				Output:  cmd.ErrOrStderr(),
			})
			return nil
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd, registerCmd, issuesCmd, regionsCmd)
}
