// Command bapi runs the demo API service.
package main

import (
	"fmt"
	"os"

	"github.com/advdv/bapi/bapp"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "bapi",
	Short:         "Demo API with a uniform JSON envelope",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return bapp.LoadDotEnv(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "file with environment variables, missing is fine")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bapi:", err)
		os.Exit(1)
	}
}
