package cmd

import (
	"fmt"

	"github.com/sebastianahumada1/studyapp/internal/content"
	"github.com/sebastianahumada1/studyapp/internal/store"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes [route-id]",
	Short: "List routes, or print a route's resolved content tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		st, err := store.Open(dbPath, newLogger(cmd))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()

		if len(args) == 0 {
			routes, err := st.ListRoutes(ctx)
			if err != nil {
				return err
			}
			if len(routes) == 0 {
				fmt.Println("No routes found. Import content with `studyapp seed`.")
				return nil
			}
			for _, r := range routes {
				fmt.Printf("%-20s  %s\n", r.ID, r.Name)
			}
			return nil
		}

		route, err := st.GetRoute(ctx, args[0])
		if err != nil {
			return err
		}
		nodes, err := st.FetchContentNodes(ctx, route.ID)
		if err != nil {
			return err
		}

		fmt.Println(route.Name)
		for _, topic := range content.Resolve(nodes) {
			fmt.Printf("  %s  (%s)\n", topic.DisplayName, topic.ID)
			for _, sub := range topic.Children {
				fmt.Printf("    %s  (%s)\n", sub.DisplayName, sub.ID)
			}
		}
		return nil
	},
}
