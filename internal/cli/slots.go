package cli

import (
	"strings"

	"promptboard/internal/editor"
	"promptboard/internal/format"
	"promptboard/internal/store"

	"github.com/spf13/cobra"
)

type slotSummary struct {
	Slot   int    `json:"slot"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	State  string `json:"state"`
	Rows   int    `json:"rows"`
	Detail string `json:"detail,omitempty"`
}

func newSlotsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List and rename slots",
	}
	cmd.AddCommand(newSlotsListCmd(app))
	cmd.AddCommand(newSlotsRenameCmd(app))
	return cmd
}

func newSlotsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every slot with its name and saved state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = sess.close() }()

			active, err := sess.slot(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := cmd.Context()
			ed := editor.New(ctx, sess.store, editor.Options{Logger: sess.log})

			out := make([]slotSummary, 0, store.SlotCount)
			for _, info := range ed.Slots() {
				res := sess.store.LoadSlot(ctx, info.Slot)
				out = append(out, slotSummary{
					Slot:   info.Slot,
					Name:   info.Name,
					Active: info.Slot == active,
					State:  res.Status.String(),
					Rows:   len(res.Rows),
					Detail: res.Detail,
				})
			}
			return writeOut(cmd, app, format.Envelope(out))
		},
	}
}

func newSlotsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <slot> <name>",
		Short:   "Set the display name of a slot",
		Example: "  promptboard slots rename 3 Drafts",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := store.ParseSlot(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			name := strings.TrimSpace(strings.Join(args[1:], " "))
			if name == "" {
				return writeErr(cmd, errEmptyName)
			}

			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = sess.close() }()

			ed := editor.New(cmd.Context(), sess.store, editor.Options{Logger: sess.log})
			if err := ed.RenameSlot(cmd.Context(), n, name); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope(map[string]any{"slot": n, "name": ed.SlotName(n)}))
		},
	}
}
