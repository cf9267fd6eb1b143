package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/advdv/bapi"
	"github.com/advdv/bapi/bapp"
	"github.com/advdv/bapi/internal/routes"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(routesCmd)
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the routes the server registers",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := bapp.ParseEnv[bapp.Settings]()()
		if err != nil {
			return err
		}

		mux := bapi.NewServeMux()
		routes.Register(mux.Group(s.APIV1Str), s.IsDev())

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PATTERN\tNAME")
		for _, line := range lo.Map(mux.Routes(), func(r bapi.Route, _ int) string {
			return r.Pattern + "\t" + lo.Ternary(r.Name == "", "-", r.Name)
		}) {
			fmt.Fprintln(tw, line)
		}

		return tw.Flush()
	},
}
