package main

import (
	"encoding/json"

	"github.com/advdv/bapi/bapp"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the settings read from the environment",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := bapp.ParseEnv[bapp.Settings]()()
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{
			"PROJECT_NAME":     s.ProjectName,
			"API_V1_STR":       s.APIV1Str,
			"ENV":              s.Env,
			"LOG_LEVEL":        s.LogLevel.String(),
			"LOG_FILE_PATH":    s.LogFilePath,
			"PORT":             s.Port,
			"OTEL_EXPORTER":    s.OtelExporter,
			"BODY_LIMIT":       s.BodyLimit,
			"SHUTDOWN_TIMEOUT": s.ShutdownTimeout.String(),
		})
	},
}
