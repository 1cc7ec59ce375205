package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ustoz-pro/ustoz/internal/ai"
	"github.com/ustoz-pro/ustoz/internal/app"
	"github.com/ustoz-pro/ustoz/internal/course"
	"github.com/ustoz-pro/ustoz/internal/generator"
	"github.com/ustoz-pro/ustoz/internal/i18n"
)

const sessionHeader = "X-Session-ID"

type server struct {
	sessions *app.SessionManager
	catalog  *i18n.Catalog
	provider ai.Provider
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /readyz", s.handleReadyz)

	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/state", s.withSession(s.handleState))
	mux.HandleFunc("POST /api/navigate", s.withSession(s.handleNavigate))
	mux.HandleFunc("POST /api/language", s.withSession(s.handleLanguage))
	mux.HandleFunc("POST /api/syllabus", s.withSession(s.handleSubmitSyllabus))
	mux.HandleFunc("POST /api/syllabus/search", s.withSession(s.handleSearch))
	mux.HandleFunc("POST /api/syllabus/reorder", s.withSession(s.handleReorder))
	mux.HandleFunc("POST /api/topics/materials", s.withSession(s.handleGenerateMaterials))
	mux.HandleFunc("POST /api/content/tab", s.withSession(s.handleTab))
	mux.HandleFunc("POST /api/exports", s.withSession(s.handleRequestExport))
	mux.HandleFunc("POST /api/exports/confirm", s.withSession(s.handleConfirmExport))
	mux.HandleFunc("POST /api/exports/decline", s.withSession(s.handleDeclineExport))
	mux.HandleFunc("GET /ws", s.withSession(s.handleWS))
	return mux
}

func (s *server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	// The backend credential is not validated at startup or on the plain
	// probe; ?deep=1 additionally pings the generative backend.
	if r.URL.Query().Get("deep") == "1" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if err := s.provider.HealthCheck(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	id, ctrl, err := s.sessions.Create()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"session": id,
		"state":   ctrl.Snapshot(),
	})
}

// withSession resolves the session controller from the X-Session-ID header
// (or ?session= for websocket clients).
func (s *server) withSession(h func(http.ResponseWriter, *http.Request, *app.Controller)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(sessionHeader)
		if id == "" {
			id = r.URL.Query().Get("session")
		}
		ctrl, ok := s.sessions.Get(id)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unknown session")
			return
		}
		h(w, r, ctrl)
	}
}

func (s *server) handleState(w http.ResponseWriter, _ *http.Request, ctrl *app.Controller) {
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (s *server) handleNavigate(w http.ResponseWriter, r *http.Request, ctrl *app.Controller) {
	var req struct {
		Target string `json:"target"` // "dashboard", "create-syllabus" or "back"
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch req.Target {
	case "dashboard":
		ctrl.OpenDashboard()
	case "create-syllabus":
		ctrl.OpenCreateSyllabus()
	case "back":
		if err := ctrl.Back(); err != nil {
			writeControllerError(w, err)
			return
		}
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown navigation target: %q", req.Target))
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (s *server) handleLanguage(w http.ResponseWriter, r *http.Request, ctrl *app.Controller) {
	var req struct {
		Language string `json:"language"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ctrl.SetLanguage(i18n.Match(req.Language))
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (s *server) handleSubmitSyllabus(w http.ResponseWriter, r *http.Request, ctrl *app.Controller) {
	var req struct {
		Subject    string `json:"subject"`
		TopicCount int    `json:"topicCount"`
		Difficulty string `json:"difficulty"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	difficulty, err := course.ParseDifficulty(req.Difficulty)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TopicCount < 1 {
		writeError(w, http.StatusBadRequest, "topicCount must be positive")
		return
	}

	if err := ctrl.SubmitSyllabus(r.Context(), req.Subject, req.TopicCount, difficulty); err != nil {
		writeGenerationError(w, ctrl, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (s *server) handleGenerateMaterials(w http.ResponseWriter, r *http.Request, ctrl *app.Controller) {
	var req struct {
		TopicID string `json:"topicId"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctrl.GenerateTopicMaterials(r.Context(), req.TopicID); err != nil {
		writeGenerationError(w, ctrl, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request, ctrl *app.Controller) {
	var req struct {
		Query string `json:"query"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctrl.SetSearch(req.Query); err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (s *server) handleReorder(w http.ResponseWriter, r *http.Request, ctrl *app.Controller) {
	var req struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctrl.MoveTopic(req.From, req.To); err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (s *server) handleTab(w http.ResponseWriter, r *http.Request, ctrl *app.Controller) {
	var req struct {
		Tab string `json:"tab"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tab, err := app.ParseTab(req.Tab)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctrl.SetTab(tab); err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (s *server) handleRequestExport(w http.ResponseWriter, r *http.Request, ctrl *app.Controller) {
	var req struct {
		Kind string `json:"kind"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	kind, err := app.ParseExportKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctrl.RequestExport(kind); err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

func (s *server) handleConfirmExport(w http.ResponseWriter, _ *http.Request, ctrl *app.Controller) {
	artifact, err := ctrl.ConfirmExport()
	if err != nil {
		writeControllerError(w, err)
		return
	}
	w.Header().Set("Content-Type", artifact.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		slog.Warn("writing artifact", "error", err)
	}
}

func (s *server) handleDeclineExport(w http.ResponseWriter, _ *http.Request, ctrl *app.Controller) {
	if err := ctrl.DeclineExport(); err != nil {
		writeControllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ctrl.Snapshot())
}

// handleWS streams state snapshots to the UI over a websocket.
func (s *server) handleWS(w http.ResponseWriter, r *http.Request, ctrl *app.Controller) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	snapshots, cancel := ctrl.Subscribe()
	defer cancel()

	writeCtx, stop := context.WithTimeout(ctx, 5*time.Second)
	err = wsjson.Write(writeCtx, conn, ctrl.Snapshot())
	stop()
	if err != nil {
		return
	}

	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			writeCtx, stop := context.WithTimeout(ctx, 5*time.Second)
			err := wsjson.Write(writeCtx, conn, snap)
			stop()
			if err != nil {
				return
			}
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		}
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeControllerError maps state-machine guard errors to HTTP statuses.
func writeControllerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrSubjectRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrBusy),
		errors.Is(err, app.ErrInvalidState),
		errors.Is(err, app.ErrNoPendingExport):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// writeGenerationError surfaces a failed generation attempt: guard errors
// keep their status mapping, backend failures become 502 with the
// session's localized error message.
func writeGenerationError(w http.ResponseWriter, ctrl *app.Controller, err error) {
	var ge *generator.GenerationError
	if errors.As(err, &ge) {
		snap := ctrl.Snapshot()
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error": snap.LastError,
			"state": snap,
		})
		return
	}
	writeControllerError(w, err)
}
