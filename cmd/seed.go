package cmd

import (
	"fmt"

	"github.com/sebastianahumada1/studyapp/internal/store"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file.json>",
	Short: "Import routes, content nodes and questions from a JSON file",
	Args:  cobra.ExactArgs(1),
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

		f, err := store.LoadSeedFile(args[0])
		if err != nil {
			return err
		}

		stats, err := st.ImportSeed(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		fmt.Printf("Imported %d routes, %d content nodes, %d questions.\n",
			stats.Routes, stats.Nodes, stats.Questions)
		return nil
	},
}
