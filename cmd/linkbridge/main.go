package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/linkbridge/internal/app"
	"github.com/MrSnakeDoc/linkbridge/internal/config"
	"github.com/MrSnakeDoc/linkbridge/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("❌ linkbridge failed: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "linkbridge",
		Short: "Shaarli REST API v1 emulator, optionally backed by LinkDing",
		Long: "linkbridge serves the subset of the Shaarli REST API v1 used by Shaarli\n" +
			"clients and forwards new links and tag listings to a LinkDing server\n" +
			"when LINKBRIDGE_LINKDING_URI is set.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnvFile(envFile); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx)
			if err != nil {
				return err
			}
			return a.Run(ctx)
		},
	}
	root.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load (default: .env when present)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	})

	return root
}
