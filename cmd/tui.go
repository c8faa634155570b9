package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/antopolskiy/taskboard/internal/board"
	"github.com/antopolskiy/taskboard/internal/clierr"
	"github.com/antopolskiy/taskboard/internal/config"
	"github.com/antopolskiy/taskboard/internal/output"
	"github.com/antopolskiy/taskboard/internal/tui"
	"github.com/antopolskiy/taskboard/internal/watcher"
)

// Board flags, shared by the root command and tui.
var (
	flagPrint   string
	flagNoMouse bool
	flagNoWatch bool
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task board",
	Long: `Launches the interactive task board. The board reloads its settings
when the config file changes on disk.

Press a to add a task, e to edit, d to delete, enter to view, ? for help.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	addTUIFlags(tuiCmd)
	rootCmd.AddCommand(tuiCmd)
}

func addTUIFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagPrint, "print", "", "print tasks when the board closes (json, table, compact)")
	cmd.Flags().BoolVar(&flagNoMouse, "no-mouse", false, "disable mouse support")
	cmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "do not reload the config file on change")
}

func runTUI(_ *cobra.Command, _ []string) error {
	printFormat, err := parsePrintFormat(flagPrint)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := board.New(logger)
	model := tui.NewBoard(cfg, store, logger)

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if !flagNoMouse && !cfg.TUI.DisableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if !flagNoWatch && cfg.Path() != "" {
		go watchConfig(ctx, cfg.Path(), p.Send, logger)
	}

	logger.Info("board opened", "config", cfg.Path())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running board: %w", err)
	}
	logger.Info("board closed", "tasks", store.Len())

	if flagPrint == "" {
		return nil
	}
	return output.Tasks(os.Stdout, printFormat, store.Tasks(), cfg.Priorities)
}

func parsePrintFormat(name string) (output.Format, error) {
	if name == "" {
		return output.FormatAuto, nil
	}
	f, ok := output.Parse(name)
	if !ok {
		return output.FormatAuto, clierr.Newf(clierr.InvalidInput,
			"invalid --print format %q; allowed: json, table, compact", name)
	}
	return f, nil
}

// watchConfig reloads the config file whenever it changes and forwards
// the result to the board until ctx is done.
func watchConfig(ctx context.Context, path string, send func(tea.Msg), logger *log.Logger) {
	w, err := watcher.NewFile(path, func() {
		send(reloadConfig(path, logger))
	})
	if err != nil {
		logger.Warn("config watcher disabled", "err", err)
		return // non-fatal: the board works without live reload
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		logger.Warn("config watcher error", "err", err)
	})
}

func reloadConfig(path string, logger *log.Logger) tea.Msg {
	cfg, err := config.Load(path)
	if err != nil {
		logger.Error("config reload failed", "path", path, "err", err)
		return tui.ConfigErrMsg{Err: err}
	}
	logger.Debug("config file changed", "path", path)
	return tui.ConfigMsg{Config: cfg}
}
