package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/plrgo/internal/calculation"
	"github.com/rgehrsitz/plrgo/internal/config"
	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/rgehrsitz/plrgo/internal/history"
	"github.com/rgehrsitz/plrgo/internal/output"
	"github.com/rgehrsitz/plrgo/internal/server"
	"github.com/rgehrsitz/plrgo/internal/tui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app is the state every subcommand shares once startup has run.
type app struct {
	settings *config.Settings
	logger   *slog.Logger
	rules    domain.CCTConfig
	engine   *calculation.CalculationEngine
	history  *history.Store

	cctFile   string
	logLevel  string
	noHistory bool
}

// setup loads .env and PLR_* settings, builds the logger, loads the CCT
// table and wires the engine and history store.
func (a *app) setup() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		s.LogLevel = a.logLevel
		if err := s.Validate(); err != nil {
			return err
		}
	}
	a.settings = s
	a.logger = config.InitLogger(s)

	cctFile := s.CCTFile
	if a.cctFile != "" {
		cctFile = a.cctFile
	}
	rules, err := config.NewCCTParser().LoadCCT(cctFile)
	if err != nil {
		return fmt.Errorf("failed to load CCT table: %w", err)
	}
	a.rules = rules
	a.engine = calculation.NewCalculationEngineWithConfig(rules)
	a.engine.SetLogger(a.logger)

	if !a.noHistory {
		a.history = history.NewStore(s.HistoryFile, s.HistoryMax)
		if err := a.history.Load(); errors.Is(err, history.ErrCorrupt) {
			a.logger.Warn("histórico corrompido, iniciando vazio", "error", err)
		} else if err != nil {
			return err
		}
	}
	a.logger.Debug("configuração carregada",
		"cct", rules.Metadata.Vigencia,
		"history", s.HistoryFile,
		"history_enabled", a.history != nil)
	return nil
}

// record appends a calculation to the history, if enabled. A failed write
// is logged and does not fail the command.
func (a *app) record(calc domain.PlrCalculation) {
	if a.history == nil {
		return
	}
	if err := a.history.Append(history.NewEntry(calc, nowFunc())); err != nil {
		a.logger.Warn("falha ao gravar histórico", "error", err)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "plr",
		Short: "Calculadora de PLR para bancários",
		Long: "Calcula a Participação nos Lucros e Resultados de bancários brasileiros " +
			"conforme a CCT FENABAN 2024/2026 e os programas próprios de cada banco.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.cctFile, "cct", "", "YAML file with an alternative CCT table")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level override: debug, info, warn, error")
	root.PersistentFlags().BoolVar(&a.noHistory, "no-history", false, "Do not read or write the calculation history")

	root.AddCommand(
		calculateCmd(a),
		discoverCmd(a),
		compareCmd(a),
		batchCmd(a),
		banksCmd(a),
		taxTableCmd(a),
		historyCmd(a),
		serveCmd(a),
		tuiCmd(a),
		validateCCTCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "plr %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func banksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List supported banks",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), output.FormatBankList(domain.Banks()))
		},
	}
}

func taxTableCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tax-table",
		Short: "Show the exclusive-taxation IRRF table for PLR",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), output.FormatTaxTable(a.engine.TaxCalc.Brackets))
		},
	}
}

func serveCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.settings.HTTPAddr
			}
			return server.New(a.engine, a.history, a.logger).ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from PLR_HTTP_ADDR)")
	return cmd
}

func tuiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Log lines would tear the alternate screen.
			a.engine.SetLogger(nil)
			p := tea.NewProgram(tui.NewModel(a.engine, a.history), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
}

func validateCCTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-cct [file]",
		Short: "Validate a CCT table file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewCCTParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s válida (vigência %s, %d faixas de IRRF)\n",
				args[0], cfg.Metadata.Vigencia, len(cfg.IRRF))
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
