package main

import (
	"fmt"
	"os"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-notebook-list/cmd"
	"github.com/mattsolo1/grove-notebook-list/cmd/config"
	"github.com/mattsolo1/grove-notebook-list/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := cli.NewStandardCommand(
		"nbl",
		"A collapsible tree of your notebooks",
	)
	config.AddGlobalFlags(rootCmd)
	cobra.OnInitialize(config.InitConfig)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		svc, err = config.InitService()
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		return nil
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if svc == nil {
			return nil
		}
		return svc.Close()
	}

	rootCmd.AddCommand(cmd.NewTreeCmd(&svc))
	rootCmd.AddCommand(cmd.NewTuiCmd(&svc))
	rootCmd.AddCommand(cmd.NewNewCmd(&svc))
	rootCmd.AddCommand(cmd.NewImportCmd(&svc))
	rootCmd.AddCommand(cmd.NewPrefsCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
