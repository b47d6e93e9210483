// Package httpapi exposes the employee directory and its single edit
// session over JSON HTTP, plus a websocket feed of committed employees.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"staffdir/internal/core"
	"staffdir/internal/seed"
	"staffdir/pkg/domain"
)

// RequestIDHeader carries the request correlation id.
const RequestIDHeader = "X-Request-ID"

// Handler serves the directory API. The wrapped service owns one edit
// session, so session requests are serialized.
type Handler struct {
	mu     sync.Mutex
	svc    *core.Service
	feed   *Feed
	logger core.Logger
	router *mux.Router
}

// SessionView is the JSON form of the edit session.
type SessionView struct {
	Selected bool         `json:"selected"`
	Employee *seed.Record `json:"employee,omitempty"`
	Draft    *seed.Record `json:"draft,omitempty"`
	Modified bool         `json:"modified"`
}

// NewHandler builds the router. feed and logger may be nil.
func NewHandler(svc *core.Service, feed *Feed, logger core.Logger) *Handler {
	if logger == nil {
		logger = discardLogger{}
	}
	h := &Handler{svc: svc, feed: feed, logger: logger, router: mux.NewRouter()}
	h.router.Use(h.requestID)
	api := h.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/employees", h.listEmployees).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id:[0-9]+}", h.getEmployee).Methods(http.MethodGet)
	api.HandleFunc("/session", h.getSession).Methods(http.MethodGet)
	api.HandleFunc("/session/selection", h.selectEmployee).Methods(http.MethodPut)
	api.HandleFunc("/session/selection", h.clearSelection).Methods(http.MethodDelete)
	api.HandleFunc("/session/draft", h.editDraft).Methods(http.MethodPatch)
	api.HandleFunc("/session/commit", h.commit).Methods(http.MethodPost)
	api.HandleFunc("/session/cancel", h.cancel).Methods(http.MethodPost)
	if feed != nil {
		api.Handle("/feed", feed).Methods(http.MethodGet)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		h.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "request_id", id)
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) listEmployees(w http.ResponseWriter, _ *http.Request) {
	out := make([]seed.Record, 0, h.svc.Directory().Len())
	for e := range h.svc.List() {
		out = append(out, seed.RecordOf(e))
	}
	writeJSON(w, http.StatusOK, map[string]any{"employees": out})
}

func (h *Handler) getEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	e, ok := h.svc.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, seed.RecordOf(e))
}

func (h *Handler) getSession(w http.ResponseWriter, _ *http.Request) {
	h.mu.Lock()
	view := h.session()
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) selectEmployee(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID *int `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ID == nil {
		writeError(w, http.StatusBadRequest, "body must be {\"id\": <employee id>}")
		return
	}
	h.mutate(w, func() error { return h.svc.Select(r.Context(), *body.ID) })
}

func (h *Handler) clearSelection(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, func() error { return h.svc.Clear(r.Context()) })
}

// errNoFields rejects an edit body that names no field, such as {} or null.
var errNoFields = errors.New("no fields to edit")

// editDraft applies a partial draft such as {"name": "Ann", "title": "CTO"}.
// Unknown fields reject the whole request before any edit is made.
func (h *Handler) editDraft(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "body must be an object of field values")
		return
	}
	for name := range body {
		if _, err := domain.ParseField(name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	h.mutate(w, func() error {
		if _, ok := h.svc.Draft(); !ok {
			return &domain.NoSelectionError{Op: "edit"}
		}
		if len(body) == 0 {
			return errNoFields
		}
		for _, f := range domain.Fields {
			value, ok := body[string(f)]
			if !ok {
				continue
			}
			if err := h.svc.Edit(r.Context(), string(f), value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *Handler) commit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, func() error { return h.svc.Commit(r.Context()) })
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, func() error { return h.svc.Cancel(r.Context()) })
}

func (h *Handler) mutate(w http.ResponseWriter, fn func() error) {
	h.mu.Lock()
	err := fn()
	view := h.session()
	h.mu.Unlock()
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) session() SessionView {
	draft, ok := h.svc.Draft()
	if !ok {
		return SessionView{}
	}
	committed, _ := h.svc.Selected()
	rec := seed.RecordOf(committed)
	d := seed.Record{ID: draft.EmployeeID, Name: draft.Name, Phone: seed.Phone(draft.Phone), Title: draft.Title}
	return SessionView{Selected: true, Employee: &rec, Draft: &d, Modified: h.svc.IsModified()}
}

func statusFor(err error) int {
	var unknown *domain.UnknownFieldError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoSelection):
		return http.StatusConflict
	case errors.As(err, &unknown), errors.Is(err, errNoFields):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Info(string, ...any)  {}
func (discardLogger) Warn(string, ...any)  {}
func (discardLogger) Error(string, ...any) {}
