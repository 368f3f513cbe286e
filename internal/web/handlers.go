package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jaminalder/tictactoe-timetravel/internal/app"
	"github.com/jaminalder/tictactoe-timetravel/internal/domain"
)

type handlers struct {
	svc *app.Service
	tpl *templates
	log *zap.Logger
}

func (h *handlers) write(w http.ResponseWriter, r *http.Request, status int, b []byte, err error) {
	if err != nil {
		h.log.Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
	b, err := renderTemplate(h.tpl.index, "base", nil)
	h.write(w, r, http.StatusOK, b, err)
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.CreateGame()
	if err != nil {
		http.Error(w, "failed to create", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	gs, ok := h.svc.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	b, err := renderTemplate(h.tpl.game, "base", gameData{ID: gs.ID, View: gs.View})
	h.write(w, r, http.StatusOK, b, err)
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = r.ParseForm()
	i, err := strconv.Atoi(r.Form.Get("i"))
	if err != nil {
		i = -1
	}
	gs, err := h.svc.Play(id, i)
	h.respond(w, r, gs, err)
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_ = r.ParseForm()
	move, err := strconv.Atoi(r.Form.Get("move"))
	if err != nil {
		move = -1
	}
	gs, err := h.svc.JumpTo(id, move)
	h.respond(w, r, gs, err)
}

func (h *handlers) sort(w http.ResponseWriter, r *http.Request) {
	gs, err := h.svc.ToggleSortOrder(chi.URLParam(r, "id"))
	h.respond(w, r, gs, err)
}

// respond renders the game fragment for htmx requests. Plain form posts are
// redirected back to the game page, or get the full page with the error when
// the action was rejected.
func (h *handlers) respond(w http.ResponseWriter, r *http.Request, gs *app.GameState, err error) {
	if errors.Is(err, app.ErrNotFound) || gs == nil {
		http.NotFound(w, r)
		return
	}
	htmx := r.Header.Get("HX-Request") == "true"
	if !htmx && err == nil {
		http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
		return
	}
	data := gameData{ID: gs.ID, View: gs.View}
	if err != nil {
		data.Error = errorMessage(err)
	}
	var b []byte
	var rerr error
	if htmx {
		b, rerr = renderTemplate(h.tpl.frag, "", data)
	} else {
		b, rerr = renderTemplate(h.tpl.game, "base", data)
	}
	h.write(w, r, http.StatusOK, b, rerr)
}

func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrOccupied):
		return "Cell is occupied"
	case errors.Is(err, domain.ErrOutOfBounds):
		return "Out of bounds"
	case errors.Is(err, domain.ErrGameOver):
		return "Game is over"
	case errors.Is(err, app.ErrMoveOutOfRange):
		return "No such move"
	default:
		return "Invalid move"
	}
}
