package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/jusunglee/mta-board/internal/board"
	"github.com/jusunglee/mta-board/pkg/mta"
)

// Handler handles HTTP requests
type Handler struct {
	client mta.Client
	board  *board.Board
	now    func() time.Time
}

// NewHandler creates a new HTTP handler
func NewHandler(client mta.Client, b *board.Board) *Handler {
	return &Handler{client: client, board: b, now: time.Now}
}

// RegisterRoutes registers all routes
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.handleIndex).Methods("GET")
	r.HandleFunc("/board.png", h.handleBoard).Methods("GET")
	r.HandleFunc("/arrivals", h.handleArrivals).Methods("GET")
	r.HandleFunc("/alerts", h.handleAlerts).Methods("GET")
}

// Response wraps API responses
type Response struct {
	Data    interface{} `json:"data"`
	Updated string      `json:"updated,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"title":     "mta-board",
		"routes":    h.board.Routes(),
		"endpoints": []string{"/board.png", "/arrivals", "/alerts"},
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleBoard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.client.Snapshot()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	img, err := h.board.Compose(snap.Arrivals, snap.Alerts, h.now())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, board.ErrInputShape) {
			status = http.StatusBadGateway
		}
		h.writeError(w, err.Error(), status)
		return
	}

	var buf bytes.Buffer
	if err := board.Encode(&buf, img, board.FormatPNG); err != nil {
		h.writeError(w, "Failed to encode board", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("write board response", "error", err)
	}
}

func (h *Handler) handleArrivals(w http.ResponseWriter, r *http.Request) {
	snap, err := h.client.Snapshot()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	response := Response{
		Data:    snap.ConvertToResponse(),
		Updated: snap.FetchedAt.Format(time.RFC3339),
	}
	h.writeJSON(w, response)
}

func (h *Handler) handleAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.client.GetServiceAlerts()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	response := Response{
		Data: alerts,
	}
	if updated := h.client.GetLastUpdate(); !updated.IsZero() {
		response.Updated = updated.Format(time.RFC3339)
	}
	h.writeJSON(w, response)
}

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.writeError(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}
