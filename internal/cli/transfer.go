package cli

import (
	"io"
	"os"
	"strings"

	"promptboard/internal/clipboard"
	"promptboard/internal/editor"
	"promptboard/internal/format"
	"promptboard/internal/model"
	"promptboard/internal/prompt"
	"promptboard/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// slotRows reads a slot without activating it: absent or unreadable slots yield the
// default layout, which is what opening the slot would show.
func slotRows(cmd *cobra.Command, app *App, sess *session) (int, []model.Row, error) {
	n, err := sess.slot(app)
	if err != nil {
		return 0, nil, err
	}
	res := sess.store.LoadSlot(cmd.Context(), n)
	switch res.Status {
	case store.StatusFound:
		return n, res.Rows, nil
	case store.StatusCorrupt:
		sess.log.Warn("slot data unreadable; using default layout", zap.Int("slot", n), zap.String("detail", res.Detail))
	}
	return n, model.DefaultLayout(), nil
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the slot layout as pretty JSON",
		Long:  "Print the layout of the slot as {\"rows\": [...]} JSON. The output is the layout itself, not a {\"data\": ...} envelope.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = sess.close() }()

			_, rows, err := slotRows(cmd, app, sess)
			if err != nil {
				return writeErr(cmd, err)
			}
			b, err := model.EncodeLayout(rows, true)
			if err != nil {
				return writeErr(cmd, err)
			}
			return format.WriteText(cmd.OutOrStdout(), string(b))
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the slot layout with a {\"rows\": [...]} JSON document",
		Example: strings.TrimSpace(`
  promptboard --slot 2 import layout.json
  promptboard --slot 1 export | promptboard --slot 4 import -
`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return writeErr(cmd, err)
			}

			// Opening the slot commits, so reject bad documents first.
			if _, err := model.DecodeLayout(data); err != nil {
				return writeErr(cmd, editor.ImportError{Err: err})
			}

			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = sess.close() }()

			ed, err := sess.openEditor(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := ed.Import(cmd.Context(), data); err != nil {
				return writeErr(cmd, err)
			}
			if err := ed.LastSaveError(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope(map[string]any{
				"slot": ed.ActiveSlot(),
				"rows": len(ed.Rows()),
			}))
		},
	}
}

func newAssembleCmd(app *App) *cobra.Command {
	var copyOut bool

	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Print the prompt assembled from the slot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = sess.close() }()

			_, rows, err := slotRows(cmd, app, sess)
			if err != nil {
				return writeErr(cmd, err)
			}
			out := prompt.Assemble(rows)
			if copyOut {
				if err := clipboard.Write(out); err != nil {
					sess.log.Warn("copy failed", zap.Error(err))
					return writeErr(cmd, err)
				}
			}
			return format.WriteText(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().BoolVar(&copyOut, "copy", false, "Also copy the prompt to the clipboard")
	return cmd
}
