package main

import (
	"fmt"
	"os"

	"github.com/m3rciful/joingate/core/buildinfo"
	corecmd "github.com/m3rciful/joingate/core/cmd"
	"github.com/m3rciful/joingate/internal/app"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "joingate",
	Short:         "Telegram bot that approves channel join requests and welcomes new members",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return corecmd.Run(corecmd.Options{
			Context:           cmd.Context(),
			ConfigPath:        configPath,
			ConfigEnvVar:      "CONFIG_PATH",
			DefaultConfigPath: "config.yaml",
			LoadConfig:        app.Load,
			Bootstrap:         app.Bootstrap,
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
	},
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to the YAML config (default $CONFIG_PATH or config.yaml)")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
