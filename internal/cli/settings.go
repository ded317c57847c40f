package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taxirapport/taxirapport/internal/domain/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage drivers, bank accounts, templates and company info",
}

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "Manage drivers",
}

var driversListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drivers",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		drivers, err := current.provider.Drivers(ctx)
		if err != nil {
			return err
		}
		def, err := current.provider.DefaultDriver(ctx)
		if err != nil {
			return err
		}
		for _, d := range drivers {
			marker := " "
			if d.ID == def {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %-24s %5.2f%%  %s\n", marker, d.ID, d.Name, d.Percent, d.BankAccount)
		}
		return nil
	},
}

var (
	driverID      string
	driverName    string
	driverPercent float64
	driverAccount string
	setAsDefault  bool
)

var driversAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or replace a driver",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fs, err := current.fileStore()
		if err != nil {
			return err
		}
		if driverID == "" || driverName == "" {
			return fmt.Errorf("--id and --name are required")
		}
		if driverAccount != "" && !settings.ValidAccountNumber(driverAccount) {
			return fmt.Errorf("invalid account number %q, expected NNNN.NN.NNNNN", driverAccount)
		}

		drivers, err := fs.Drivers(ctx)
		if err != nil {
			return err
		}
		def, err := fs.DefaultDriver(ctx)
		if err != nil {
			return err
		}

		updated := drivers[:0:0]
		for _, d := range drivers {
			if d.ID != driverID {
				updated = append(updated, d)
			}
		}
		updated = append(updated, settings.Driver{
			ID:          driverID,
			Name:        driverName,
			Percent:     driverPercent,
			BankAccount: driverAccount,
		})
		if setAsDefault {
			def = driverID
		}
		return fs.SaveDrivers(ctx, updated, def)
	},
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage column templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		templates, err := current.provider.Templates(ctx)
		if err != nil {
			return err
		}
		def, err := current.provider.DefaultTemplate(ctx)
		if err != nil {
			return err
		}
		for _, t := range templates {
			marker := " "
			if t.Name == def {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %s\n", marker, t.Name, strings.Join(t.Columns, ", "))
		}
		return nil
	},
}

var templateColumns string

var templatesSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Add or replace a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := args[0]
		var columns []string
		for _, col := range strings.Split(templateColumns, ",") {
			if col = strings.TrimSpace(col); col != "" {
				columns = append(columns, col)
			}
		}
		if len(columns) == 0 {
			return fmt.Errorf("--columns must name at least one column")
		}

		templates, err := current.provider.Templates(ctx)
		if err != nil {
			return err
		}
		updated := templates[:0:0]
		for _, t := range templates {
			if t.Name != name {
				updated = append(updated, t)
			}
		}
		updated = append(updated, settings.Template{Name: name, Columns: columns})
		return current.provider.SaveTemplates(ctx, updated)
	},
}

var templatesSetDefaultCmd = &cobra.Command{
	Use:   "set-default <name>",
	Short: "Mark a template as default",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := current.fileStore()
		if err != nil {
			return err
		}
		return fs.SetDefaultTemplate(cmd.Context(), args[0])
	},
}

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage company info",
}

var companyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show company info",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := current.provider.CompanyInfo(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\nOrg.nr: %s\n%s\n", info.Name, info.OrgNumber, info.Address)
		return nil
	},
}

var (
	companyName  string
	companyOrgNr string
	companyAddr  string
)

var companySetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set company info",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs, err := current.fileStore()
		if err != nil {
			return err
		}
		return fs.SaveCompanyInfo(cmd.Context(), settings.CompanyInfo{
			Name:      companyName,
			OrgNumber: companyOrgNr,
			Address:   companyAddr,
		})
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage bank accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bank accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		accounts, err := current.provider.BankAccounts(ctx)
		if err != nil {
			return err
		}
		def, err := current.provider.DefaultBankAccount(ctx)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			marker := " "
			if a.AccountNumber == def {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s\n", marker, a.AccountNumber, a.Name)
		}
		return nil
	},
}

var accountName string

var accountsAddCmd = &cobra.Command{
	Use:   "add <account-number>",
	Short: "Add a bank account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fs, err := current.fileStore()
		if err != nil {
			return err
		}
		number := strings.TrimSpace(args[0])
		if !settings.ValidAccountNumber(number) {
			return fmt.Errorf("invalid account number %q, expected NNNN.NN.NNNNN", number)
		}

		accounts, err := fs.BankAccounts(ctx)
		if err != nil {
			return err
		}
		def, err := fs.DefaultBankAccount(ctx)
		if err != nil {
			return err
		}
		updated := accounts[:0:0]
		for _, a := range accounts {
			if a.AccountNumber != number {
				updated = append(updated, a)
			}
		}
		updated = append(updated, settings.BankAccount{AccountNumber: number, Name: accountName})
		if setAsDefault || def == "" {
			def = number
		}
		return fs.SaveBankAccounts(ctx, updated, def)
	},
}

func init() {
	driversAddCmd.Flags().StringVar(&driverID, "id", "", "driver id")
	driversAddCmd.Flags().StringVar(&driverName, "name", "", "driver name")
	driversAddCmd.Flags().Float64Var(&driverPercent, "percent", 45.0, "commission percentage")
	driversAddCmd.Flags().StringVar(&driverAccount, "account", "", "driver bank account")
	driversAddCmd.Flags().BoolVar(&setAsDefault, "default", false, "mark as default")
	accountsAddCmd.Flags().StringVar(&accountName, "name", "", "account label")
	accountsAddCmd.Flags().BoolVar(&setAsDefault, "default", false, "mark as default")
	templatesSaveCmd.Flags().StringVar(&templateColumns, "columns", "", "comma-separated ordered column names")

	driversCmd.AddCommand(driversListCmd, driversAddCmd)
	templatesCmd.AddCommand(templatesListCmd, templatesSaveCmd, templatesSetDefaultCmd)
	companyCmd.AddCommand(companyShowCmd, companySetCmd)
	accountsCmd.AddCommand(accountsListCmd, accountsAddCmd)
	settingsCmd.AddCommand(driversCmd, templatesCmd, companyCmd, accountsCmd)
	rootCmd.AddCommand(settingsCmd)
}
