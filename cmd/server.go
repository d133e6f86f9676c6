/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/config"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the LinuxGuide backend server",
	Long: `Starts the LinuxGuide backend server. Usage:

	linuxguide server
`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
		cfg := config.LoadConfig()

		srv, err := server.New(cmd.Context(), cfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
		logger.Info().Int("port", cfg.ServerPort).Msg("server listening")
		if err := srv.Start(); err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
