package cli

import (
	"net"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"promptboard/internal/format"
	"promptboard/internal/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWebCmd(app *App) *cobra.Command {
	var addr string
	var open bool

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the board as HTML on a local HTTP server",
		Long: strings.TrimSpace(`
Serve the board as server-rendered HTML. Every change is a form post; the page
reloads with the new state. Changes are saved to the same slots the TUI uses.

Do not run the TUI and the web server on the same data dir at the same time.
`),
		Example: strings.TrimSpace(`
  promptboard web
  promptboard --slot 2 web --addr 127.0.0.1:8080 --open
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer func() { _ = sess.close() }()

			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = sess.cfg.Web.Addr
			}

			ed, err := sess.openEditor(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			srv, err := web.NewServer(web.ServerConfig{Addr: listenAddr, Editor: ed, Logger: sess.log})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}
			url := "http://" + ln.Addr().String() + "/"

			opened := false
			openErr := ""
			if open {
				if err := openURL(url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}
			_ = writeOut(cmd, app, format.Envelope(map[string]any{
				"url":     url,
				"slot":    ed.ActiveSlot(),
				"dir":     sess.store.Dir,
				"opened":  opened,
				"openErr": openErr,
			}))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := srv.Serve(ctx, ln); err != nil {
				sess.log.Error("web server stopped", zap.Error(err))
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", envOr("PROMPTBOARD_WEB_ADDR", ""), "Listen address (default: web.addr from config.yaml, 127.0.0.1:3340)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the page in the default browser")

	return cmd
}

func openURL(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Run()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url).Run()
	default:
		return exec.Command("xdg-open", url).Run()
	}
}
