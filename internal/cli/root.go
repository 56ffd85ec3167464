package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"promptboard/internal/editor"
	"promptboard/internal/format"
	"promptboard/internal/logging"
	"promptboard/internal/store"
	"promptboard/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type App struct {
	Dir        string
	Slot       int
	PrettyJSON bool
	LogLevel   string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "promptboard",
		Short:        "Build prompts from text blocks and toggleable badges",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI on the last used slot
  promptboard

  # Start the TUI on slot 3 (shortcut for: promptboard --slot 3)
  promptboard 3

  # Print the assembled prompt of slot 2 and copy it
  promptboard --slot 2 assemble --copy

  # Copy a layout between slots
  promptboard --slot 1 export | promptboard --slot 4 import -
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("PROMPTBOARD_DIR", ""), "Data dir (default: data_dir from config.yaml, or ~/.promptboard/data)")
	cmd.PersistentFlags().IntVar(&app.Slot, "slot", envInt("PROMPTBOARD_SLOT", 0), "Slot 1-5 (default: last used slot)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("PROMPTBOARD_LOG_LEVEL", ""), "Log level (debug|info|warn|error)")

	cmd.AddCommand(newSlotsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newImportCmd(app))
	cmd.AddCommand(newAssembleCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newWebCmd(app))

	return cmd
}

// session is what a command needs after flags, env and config.yaml are resolved.
type session struct {
	cfg   *store.Config
	store store.Store
	ui    *store.UIState
	log   *zap.Logger
	close func() error
}

func openSession(app *App) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := cfg.ResolveDataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if strings.TrimSpace(app.LogLevel) != "" {
		level = app.LogLevel
	}
	file := cfg.Log.File
	if strings.TrimSpace(file) == "" {
		file = logging.DefaultFile(dir)
	}
	log, closeLog, err := logging.New(logging.Options{Level: level, File: file})
	if err != nil {
		return nil, err
	}

	ui, err := s.LoadUIState()
	if err != nil {
		log.Warn("load ui state failed", zap.Error(err))
		ui = &store.UIState{Version: 1}
	}
	return &session{cfg: cfg, store: s, ui: ui, log: log, close: closeLog}, nil
}

// slot picks the slot to act on: --slot, then the last used slot, then start_slot.
func (s *session) slot(app *App) (int, error) {
	if app.Slot != 0 {
		if err := store.ValidSlot(app.Slot); err != nil {
			return 0, err
		}
		return app.Slot, nil
	}
	if s.ui != nil && s.ui.ActiveSlot != 0 {
		return s.ui.ActiveSlot, nil
	}
	return s.cfg.StartSlot, nil
}

func (s *session) openEditor(ctx context.Context, app *App) (*editor.Editor, error) {
	n, err := s.slot(app)
	if err != nil {
		return nil, err
	}
	return editor.Open(ctx, s.store, n, editor.Options{Logger: s.log})
}

func runTUI(cmd *cobra.Command, app *App) error {
	sess, err := openSession(app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer func() { _ = sess.close() }()

	ed, err := sess.openEditor(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	sess.log.Info("tui start", zap.Int("slot", ed.ActiveSlot()), zap.String("dir", sess.store.Dir))
	return tui.Run(ed, tui.Options{
		Store:  sess.store,
		Mode:   sess.ui.Mode,
		Theme:  sess.cfg.TUI.Theme,
		Logger: sess.log,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return d
	}
	return n
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
