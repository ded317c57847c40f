package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taxirapport/taxirapport/internal/domain/report"
	"github.com/taxirapport/taxirapport/internal/domain/report/pdf"
	"github.com/taxirapport/taxirapport/internal/domain/settings"
	"github.com/taxirapport/taxirapport/pkg/storage"
)

var (
	reportDriver   string
	reportTemplate string
	reportName     string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate PDF reports from shift export files",
}

var reportLonnCmd = &cobra.Command{
	Use:   "lonn <file>...",
	Short: "Generate a salary report for one driver across the given files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a := current

		session := report.NewLonnSession(a.provider, a.ledger, a.logger)
		if err := session.LoadFiles(args); err != nil {
			return err
		}
		session.SetDriver(reportDriver)
		session.SetTemplate(reportTemplate)

		warnMissingTemplateColumns(ctx, a, session)

		rep, err := session.Recompute(ctx)
		if err != nil {
			return err
		}

		name := reportName
		if name == "" {
			name = fmt.Sprintf("Lønn - %s %s %d", rep.Driver.Name, rep.Period.MonthName(), rep.Period.Year)
		}

		archive, err := storage.NewArchive(a.cfg.Reports.Root)
		if err != nil {
			return err
		}
		path, err := archive.LonnPath(rep.Period.Year, name)
		if err != nil {
			return err
		}
		if err := renderTo(path, func(f *os.File) error {
			return pdf.NewRenderer(a.logger).RenderLonn(f, rep)
		}); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "PDF lagret til: %s\n", path)
		return nil
	},
}

var reportSkiftCmd = &cobra.Command{
	Use:   "skift <file>",
	Short: "Generate a shift report for one export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a := current

		session := report.NewSkiftSession(a.provider, a.journalFor(args[0]), a.logger)
		if err := session.LoadFile(args[0]); err != nil {
			return err
		}
		session.SetTemplate(reportTemplate)

		rep, err := session.Recompute(ctx)
		if err != nil {
			return err
		}

		name := reportName
		if name == "" {
			name = fmt.Sprintf("Skift rapport %s %d", rep.Period.MonthName(), rep.Period.Year)
		}
		loyve := rep.License
		if loyve == "" {
			loyve = "unknown"
		}

		archive, err := storage.NewArchive(a.cfg.Reports.Root)
		if err != nil {
			return err
		}
		path, err := archive.SkiftPath(rep.Period.Year, rep.Period.Month, loyve, name)
		if err != nil {
			return err
		}
		if err := renderTo(path, func(f *os.File) error {
			return pdf.NewRenderer(a.logger).RenderSkift(f, rep)
		}); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "PDF lagret til: %s\n", path)
		return nil
	},
}

func renderTo(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// warnMissingTemplateColumns logs template columns absent from the loaded
// data, with close-match suggestions from the live headers.
func warnMissingTemplateColumns(ctx context.Context, a *app, session *report.LonnSession) {
	if reportTemplate == "" || reportTemplate == report.StandardTemplate {
		return
	}
	templates, err := a.provider.Templates(ctx)
	if err != nil {
		return
	}
	var tmpl settings.Template
	for _, t := range templates {
		if t.Name == reportTemplate {
			tmpl = t
			break
		}
	}
	datasets := session.Datasets()
	if tmpl.Name == "" || len(datasets) == 0 {
		return
	}
	for _, missing := range report.MissingColumns(datasets[0], tmpl) {
		a.logger.Warn("template column not in loaded data",
			slog.String("column", missing),
			slog.Any("suggestions", report.SuggestColumns(missing, a.provider.AvailableColumns())),
		)
	}
}

func init() {
	for _, cmd := range []*cobra.Command{reportLonnCmd, reportSkiftCmd} {
		cmd.Flags().StringVar(&reportTemplate, "template", "", "column template name (default: the stored default, then all columns)")
		cmd.Flags().StringVar(&reportName, "name", "", "report name (default derived from driver and period)")
	}
	reportLonnCmd.Flags().StringVar(&reportDriver, "driver", "", "driver id (default: the stored default driver)")

	reportCmd.AddCommand(reportLonnCmd, reportSkiftCmd)
	rootCmd.AddCommand(reportCmd)
}
