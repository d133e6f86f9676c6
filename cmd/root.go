/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "linuxguide",
	Short: "Backend API server for the LinuxGuide content platform",
	Long: `linuxguide is the backend for the LinuxGuide content platform.

It serves a JWT-authenticated REST API over PostgreSQL for guides, posts,
tags, comments and contact messages.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
