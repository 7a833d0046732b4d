package commands

import (
	"fmt"

	"github.com/metinatakli/movie-catalog/internal/dbmigrate"
	"github.com/spf13/cobra"
)

var (
	// Down flags
	steps int
	all   bool
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(mg *dbmigrate.Migrator) error {
			err := mg.Up()
			if err != nil {
				return err
			}

			return printVersion(cmd, mg)
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback migrations",
	Long: `Rollback applied migrations.

Examples:
  migrate down               # Rollback last migration
  migrate down --steps 2     # Rollback the last two migrations
  migrate down --all         # Rollback everything`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !all && steps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}

		return withMigrator(func(mg *dbmigrate.Migrator) error {
			n := steps
			if all {
				n = 0
			}

			err := mg.Down(n)
			if err != nil {
				return err
			}

			return printVersion(cmd, mg)
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(mg *dbmigrate.Migrator) error {
			return printVersion(cmd, mg)
		})
	},
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd, versionCmd)

	downCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to rollback")
	downCmd.Flags().BoolVar(&all, "all", false, "Rollback all migrations")
}

func withMigrator(fn func(mg *dbmigrate.Migrator) error) error {
	if dbURL == "" {
		return fmt.Errorf("--db flag is required")
	}

	mg, err := dbmigrate.New(dbURL)
	if err != nil {
		return err
	}
	defer mg.Close()

	return fn(mg)
}

func printVersion(cmd *cobra.Command, mg *dbmigrate.Migrator) error {
	version, dirty, ok, err := mg.Version()
	if err != nil {
		return err
	}

	if !ok {
		cmd.Println("no migrations applied")
		return nil
	}

	if dirty {
		cmd.Printf("version %d (dirty)\n", version)
		return nil
	}

	cmd.Printf("version %d\n", version)
	return nil
}
