package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Long: `Open the configured store and bring its schema up to date, then exit.

The sqlite driver tracks versions in PRAGMA user_version; the postgres
driver uses gorm AutoMigrate.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup(rootOpts)
			if err != nil {
				return err
			}
			defer env.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			fmt.Fprintln(cmd.OutOrStdout(), env.cfg.Summary())
			return nil
		},
	}
}
