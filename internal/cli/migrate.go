package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taxirapport/taxirapport/internal/domain/settings"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run settings database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if current.database == nil {
			return fmt.Errorf("migrations need SETTINGS_BACKEND=postgres")
		}
		sqlDB := current.database.SQL()
		defer sqlDB.Close()
		if err := settings.Migrate(sqlDB); err != nil {
			return err
		}
		current.logger.Info("settings schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
