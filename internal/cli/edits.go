package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taxirapport/taxirapport/pkg/format"
)

var (
	editLoyve     string
	editSkiftnr   string
	editNote      string
	editJournal   string
	editTimestamp string
)

var editsCmd = &cobra.Command{
	Use:   "edits",
	Short: "Manage the ledger of manual cash corrections",
}

var editsAddCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Add or update a cash correction for a shift",
	Long: `Without --journal the correction goes to the shared ledger, where one
entry per license and shift number holds the latest amount. With --journal
it is appended to the named file's journal, where corrections accumulate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := strconv.ParseFloat(strings.ReplaceAll(args[0], ",", "."), 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		if editLoyve == "" || editSkiftnr == "" {
			return fmt.Errorf("--loyve and --skiftnr are required")
		}

		if editJournal != "" {
			return current.journalFor(editJournal).Append(editLoyve, editSkiftnr, amount, editNote)
		}
		return current.ledger.Upsert(editLoyve, editSkiftnr, amount, editNote)
	},
}

var editsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledger corrections",
	RunE: func(cmd *cobra.Command, args []string) error {
		all := current.ledger.All()
		if editJournal != "" {
			all = current.journalFor(editJournal).All()
		}
		if len(all) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Ingen rettelser.")
			return nil
		}
		for _, e := range all {
			line := fmt.Sprintf("[%s] Løyve %s / Skiftnr %s: %s kr", e.Timestamp, e.License, e.Shift, format.Number(e.Amount))
			if e.Note != "" {
				line += " (" + e.Note + ")"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

var editsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete corrections for a shift",
	RunE: func(cmd *cobra.Command, args []string) error {
		if editLoyve == "" || editSkiftnr == "" {
			return fmt.Errorf("--loyve and --skiftnr are required")
		}
		if editJournal != "" {
			if editTimestamp == "" {
				return fmt.Errorf("--timestamp is required when deleting from a journal")
			}
			return current.journalFor(editJournal).DeleteAt(editLoyve, editSkiftnr, editTimestamp)
		}
		return current.ledger.Delete(editLoyve, editSkiftnr)
	},
}

func init() {
	editsCmd.PersistentFlags().StringVar(&editLoyve, "loyve", "", "license number")
	editsCmd.PersistentFlags().StringVar(&editSkiftnr, "skiftnr", "", "shift number")
	editsCmd.PersistentFlags().StringVar(&editJournal, "journal", "", "operate on the journal of this source file instead of the shared ledger")
	editsAddCmd.Flags().StringVar(&editNote, "note", "", "free-text note")
	editsDeleteCmd.Flags().StringVar(&editTimestamp, "timestamp", "", "timestamp of the journal entry to delete")

	editsCmd.AddCommand(editsAddCmd, editsListCmd, editsDeleteCmd)
	rootCmd.AddCommand(editsCmd)
}
