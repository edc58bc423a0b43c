package main

import (
	"fmt"
	"github.com/spf13/cobra"
	"hourbot/internal/di"
	"hourbot/internal/structures"
	"os"
)

func newRootCommand() *cobra.Command {
	flags := &structures.CliFlags{}

	cmd := &cobra.Command{
		Use:           "hourbot",
		Short:         "WhatsApp/SMS webhook bot for logging learning hours",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := di.InitApp(flags)
			if err != nil {
				return err
			}
			return app.Run()
		},
	}

	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML config file (optional)")
	cmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to stdout")
	return cmd
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hourbot:", err)
		os.Exit(1)
	}
}
