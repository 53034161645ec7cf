package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/localnerve/wastedash/internal/services"
	"github.com/spf13/cobra"
)

func newTenantsCommand() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "tenants",
		Short: "List tenants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			tenants, err := e.registry.List(ctx, all)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSLUG\tNAME\tACTIVE\tDASHBOARD")
			for _, t := range tenants {
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n", t.ID, t.Slug, t.Name, t.IsActive, services.DashboardURL(t.Slug))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include inactive tenants")
	return cmd
}
