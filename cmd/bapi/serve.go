package main

import (
	"os/signal"
	"syscall"

	"github.com/advdv/bapi/bapp"
	"github.com/advdv/bapi/internal/routes"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := bapp.NewApp[bapp.Settings](routes.Mount)
		if err := app.Err(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return app.Start(ctx)
	},
}
