package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Se sobreescriben con -ldflags "-X main.Version=..."
var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

const appName = "clinic-medications"

// @title clinic-medications API
// @version 1.0
// @description Catálogo de medicamentos, sets y hojas de receta con la tabla de administración.
// @BasePath /
func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Medication catalog and prescription sheet service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (YAML); defaults to ./config/config.yaml or ./config.yaml")

	cmd.AddCommand(
		serveCmd(&configPath),
		migrateCmd(&configPath),
		renderCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
			},
		},
	)
	return cmd
}
