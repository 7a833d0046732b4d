package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	dbURL string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the movie catalog database schema",
	Long: `Apply or roll back the SQL migrations bundled with the movie catalog API.

The database URL defaults to the MOVIES_DB_DSN environment variable.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", os.Getenv("MOVIES_DB_DSN"), "Database connection URL")
}
