package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yurifrl/expensu/pkg/config"
	"github.com/yurifrl/expensu/pkg/console"
	"github.com/yurifrl/expensu/pkg/menu"
	"github.com/yurifrl/expensu/pkg/recorder"
	"github.com/yurifrl/expensu/pkg/reporter"
	"github.com/yurifrl/expensu/pkg/store"
)

var (
	cfgFile       string
	listFilters   filters
	listFormat    string
	summaryFormat string
	fs            afero.Fs = afero.NewOsFs()
)

type app struct {
	cfg      *config.Config
	logger   *log.Logger
	store    *store.Store
	console  *console.Console
	recorder *recorder.Recorder
	reporter *reporter.Reporter
}

// newApp wires the components for one command run. Store messages go to
// storeOut so machine-readable output on stdout stays clean.
func newApp(cmd *cobra.Command, storeOut io.Writer) (*app, error) {
	cfg, err := config.Build(fs, cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Prefix:          "expensu",
		Level:           level,
	})
	if cfg.Debug {
		pp.Fprintln(cmd.ErrOrStderr(), cfg)
	}

	out := cmd.OutOrStdout()
	c := console.New(cmd.InOrStdin(), out)
	st := store.New(fs, cfg.File, storeOut, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		console:  c,
		recorder: recorder.New(st, c, logger),
		reporter: reporter.New(st, out, logger),
	}, nil
}

var rootCmd = &cobra.Command{
	Use:           "expensu",
	Short:         "Track personal expenses in a CSV file",
	Long:          "expensu records dated expenses with a category and a description in a CSV file.\nRun it without a subcommand for the interactive menu.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := a.store.EnsureInitialized(); err != nil {
			return err
		}
		return menu.New(a.console, a.recorder, a.reporter, a.logger).Run()
	},
}

var addCmd = &cobra.Command{
	Use:   "add <amount> <category> [description]",
	Short: "Record an expense dated today",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := a.store.EnsureInitialized(); err != nil {
			return err
		}

		description := ""
		if len(args) == 3 {
			description = args[2]
		}
		e, err := a.recorder.Add(args[0], args[1], description)
		if err != nil {
			return err
		}
		a.logger.Debug("expense added", "expense", e)
		fmt.Fprintln(cmd.OutOrStdout(), "Expense added.")
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded expenses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := listFilters.toFilterFunc()
		if err != nil {
			return err
		}

		switch listFormat {
		case "text":
			a, err := newApp(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return a.reporter.ListAll(filter)
		case "csv":
			a, err := newApp(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return a.reporter.ExportCSV(filter)
		default:
			return fmt.Errorf("unknown format %q: expected text or csv", listFormat)
		}
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the total spent per category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		switch summaryFormat {
		case "text":
			a, err := newApp(cmd, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return a.reporter.SummaryByCategory()
		case "yaml":
			a, err := newApp(cmd, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return a.reporter.WriteSummaryYAML()
		default:
			return fmt.Errorf("unknown format %q: expected text or yaml", summaryFormat)
		}
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().StringP("file", "f", store.DefaultPath, "Expense file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	// Filter flags
	listCmd.Flags().StringVar(&listFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listFilters.minAmount, "min", "", "Minimum amount")
	listCmd.Flags().StringVar(&listFilters.maxAmount, "max", "", "Maximum amount")
	listCmd.Flags().StringVar(&listFilters.category, "category", "", "Filter by category (case insensitive)")
	listCmd.Flags().StringVarP(&listFormat, "format", "o", "text", "Output format: text or csv")

	summaryCmd.Flags().StringVarP(&summaryFormat, "format", "o", "text", "Output format: text or yaml")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
