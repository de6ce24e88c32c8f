package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"sheetrep/adapters/excel"
	"sheetrep/adapters/sqlite"
	"sheetrep/app"
	"sheetrep/internal/config"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetrep",
		Short: "Load indicator spreadsheets into a sqlite report table",
	}

	rootCmd.AddCommand(
		newLoadCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLoadCmd() *cobra.Command {
	var output string
	var sheet string
	var summary bool

	cmd := &cobra.Command{
		Use:   "load [input.xlsx]",
		Short: "Extract indicator records, load them, and print the aggregate report",
		Long: `Extract normalized (type, name, date, value, company) records from an
indicator spreadsheet, load them into a sqlite report table, and print the
SUM(value) aggregate grouped by (date, name, type).

The report table is dropped and recreated on every run, so reloading the
same input never double-counts.

Example: sheetrep load indicators.xlsx --sheet January -o /tmp/report.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd.Context(), args[0], output, sheet, summary)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output sqlite file (default <input-stem>.db next to the input)")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet to read (default the workbook's active sheet)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Append distribution statistics over the group totals")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the sheetrep version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sheetrep %s\n", version)
		},
	}
}

func runLoad(ctx context.Context, input, output, sheet string, summary bool) error {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if output == "" {
		output = derivedOutputPath(input)
	}

	extractor, err := excel.NewExtractor(input, sheet, layoutFromConfig(cfg))
	if err != nil {
		return err
	}
	defer extractor.Close()

	store, err := sqlite.Open(output, cfg.Store.Table)
	if err != nil {
		return err
	}
	defer store.Close()

	loader := app.NewLoader(extractor, store)
	if _, err := loader.Load(ctx); err != nil {
		return err
	}

	rows, err := loader.Aggregate(ctx)
	if err != nil {
		return err
	}

	app.WriteReport(os.Stdout, rows)
	if summary {
		if err := app.WriteSummary(os.Stdout, rows); err != nil {
			return err
		}
	}
	return nil
}

func layoutFromConfig(cfg *config.Config) excel.Layout {
	return excel.Layout{
		StartRow:   cfg.Layout.StartRow,
		StartCol:   cfg.Layout.StartCol,
		TypeRow:    cfg.Layout.TypeRow,
		NameRow:    cfg.Layout.NameRow,
		DateRow:    cfg.Layout.DateRow,
		CompanyCol: cfg.Layout.CompanyCol,
	}
}

// derivedOutputPath places the report database next to the input file,
// named after the input's stem.
func derivedOutputPath(input string) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), stem+".db")
}
