package cmd

import (
	"github.com/sebastianahumada1/studyapp/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "studyapp",
	Short: "Adaptive practice sessions from the terminal",
	Long:  "Studyapp — timed multiple-choice practice sessions with interleaved scheduling, error-history targeting and AI feedback on written reasoning.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYAPP_DB env var)")
	rootCmd.PersistentFlags().String("user", "local", "User id that owns attempts and error history")
	rootCmd.PersistentFlags().Bool("verbose", false, "Log internals to stderr")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then STUDYAPP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// newLogger builds the command logger: a development logger on stderr with
// --verbose, a no-op logger otherwise.
func newLogger(cmd *cobra.Command) *zap.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
