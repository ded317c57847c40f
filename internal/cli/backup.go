package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taxirapport/taxirapport/pkg/cron"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot the edit ledger",
}

var backupRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Take one ledger snapshot now",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newBackupScheduler().RunNow()
	},
}

var backupStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the backup scheduler until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newBackupScheduler()
		if err := s.Start(current.cfg.Backup.Schedule); err != nil {
			return err
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop

		<-s.Stop().Done()
		return nil
	},
}

func newBackupScheduler() *cron.Scheduler {
	return cron.NewScheduler(
		current.cfg.Ledger.Path,
		current.cfg.Backup.Dir,
		current.cfg.Backup.Keep,
		current.logger,
	)
}

func init() {
	backupCmd.AddCommand(backupRunCmd, backupStartCmd)
	rootCmd.AddCommand(backupCmd)
}
