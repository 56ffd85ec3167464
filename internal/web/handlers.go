package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"promptboard/internal/editor"
	"promptboard/internal/model"
	"promptboard/internal/render"
	"promptboard/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxImportBytes = 4 << 20

type pageVM struct {
	Canvas render.Canvas
	Mode   string
	View   bool
	Flash  string
	// FlashError marks Flash as an error notification.
	FlashError bool
	ImportJSON string
}

func modeFrom(r *http.Request) string {
	if r.FormValue("mode") == store.ModeView {
		return store.ModeView
	}
	return store.ModeEdit
}

func homeURL(mode, flash string) string {
	q := url.Values{}
	if mode == store.ModeView {
		q.Set("mode", mode)
	}
	if flash != "" {
		q.Set("flash", flash)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}

// page builds the view model. Callers must hold s.mu.
func (s *Server) page(r *http.Request) pageVM {
	mode := modeFrom(r)
	return pageVM{
		Canvas: render.FromEditor(s.ed),
		Mode:   mode,
		View:   mode == store.ModeView,
		Flash:  strings.TrimSpace(r.URL.Query().Get("flash")),
	}
}

// redirectHome finishes a successful POST. An autosave failure is surfaced as a flash.
func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request, flash string) {
	if err := s.ed.LastSaveError(); err != nil {
		flash = "Autosave failed: " + err.Error()
	}
	http.Redirect(w, r, homeURL(modeFrom(r), flash), http.StatusSeeOther)
}

// renderError redraws the page with an error notification. Callers must hold s.mu.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error, vm func(*pageVM)) {
	p := s.page(r)
	p.Flash = errorMessage(err)
	p.FlashError = true
	if vm != nil {
		vm(&p)
	}
	s.writeHTMLTemplate(w, statusFor(err), "page.html", p)
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidJSON):
		return "Import failed: invalid JSON."
	case errors.Is(err, model.ErrMissingRows):
		return `Import failed: missing "rows" array.`
	}
	return err.Error()
}

func statusFor(err error) int {
	var nf editor.NotFoundError
	var km editor.KindMismatchError
	var ic editor.InvalidColsError
	var ie editor.ImportError
	var is store.InvalidSlotError
	var fe formError
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &km), errors.As(err, &ic), errors.As(err, &ie), errors.As(err, &is), errors.As(err, &fe):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p := s.page(r)
	s.mu.Unlock()
	s.writeHTMLTemplate(w, http.StatusOK, "page.html", p)
}

func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := s.ed.Output()
	s.mu.Unlock()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, out)
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	op := r.PostForm.Get("op")
	if modeFrom(r) == store.ModeView && op != "" && !viewModeOps[op] {
		s.renderError(w, r, formError{Field: "op", Msg: fmt.Sprintf("%q changes the layout, which is locked in view mode", op)}, nil)
		return
	}
	cmd, err := commandFromForm(r.PostForm)
	if err == nil {
		err = s.ed.Dispatch(r.Context(), cmd)
	}
	if err != nil {
		s.log.Info("command rejected", zap.String("op", op), zap.Error(err))
		s.renderError(w, r, err, nil)
		return
	}
	s.redirectHome(w, r, "")
}

func (s *Server) handleSlotSwitch(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := store.ParseSlot(chi.URLParam(r, "slot"))
	if err == nil {
		err = s.ed.SwitchSlot(r.Context(), n)
	}
	if err != nil {
		s.renderError(w, r, err, nil)
		return
	}
	s.redirectHome(w, r, "")
}

func (s *Server) handleSlotRename(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := store.ParseSlot(chi.URLParam(r, "slot"))
	if err == nil {
		err = s.ed.RenameSlot(r.Context(), n, r.FormValue("name"))
	}
	if err != nil {
		s.renderError(w, r, err, nil)
		return
	}
	s.redirectHome(w, r, "")
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data, err := s.ed.Export()
	slot := s.ed.ActiveSlot()
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="promptboard-slot-%d.json"`, slot))
	}
	_, _ = w.Write(data)
}

// handleImport accepts the layout as an uploaded file ("file") or pasted text ("json").
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)
	data, err := importPayload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ed.Import(r.Context(), data); err != nil {
		s.renderError(w, r, err, func(p *pageVM) { p.ImportJSON = string(data) })
		return
	}
	s.redirectHome(w, r, "Layout imported")
}

func importPayload(r *http.Request) ([]byte, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			return nil, err
		}
		if f, _, err := r.FormFile("file"); err == nil {
			defer f.Close()
			b, err := io.ReadAll(f)
			if err != nil {
				return nil, err
			}
			if len(strings.TrimSpace(string(b))) > 0 {
				return b, nil
			}
		}
	}
	return []byte(r.FormValue("json")), nil
}
