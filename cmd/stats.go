package cmd

import (
	"fmt"

	"github.com/sebastianahumada1/studyapp/internal/selection"
	"github.com/sebastianahumada1/studyapp/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the user's ranked error history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		user, _ := cmd.Flags().GetString("user")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}

		st, err := store.Open(dbPath, newLogger(cmd))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()

		entries, err := selection.RankErrors(cmd.Context(), st, user, limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No wrong answers recorded yet.")
			return nil
		}

		fmt.Printf("%-6s  %-30s  %s\n", "Errors", "Subtopic", "Topic")
		for _, e := range entries {
			name := e.SubtopicName
			if name == "" {
				name = "(topic-level)"
			}
			fmt.Printf("%-6d  %-30s  %s\n", e.ErrorCount, name, e.TopicName)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 10, "Maximum number of entries to show")
}
