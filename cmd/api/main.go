package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenfund/core/cmd/api/commands"
)

// @title GreenFund API
// @version 1.0
// @description Crowdfunding campaigns, donations and review backend

// @host localhost:4000
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token from /admin/login.

func main() {
	rootCmd := &cobra.Command{
		Use:           "greenfund",
		Short:         "GreenFund API Server",
		Long:          `GreenFund is a crowdfunding backend for environmental campaigns, storing its data as JSON documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewSeedCommand())
	rootCmd.AddCommand(commands.NewUserCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
