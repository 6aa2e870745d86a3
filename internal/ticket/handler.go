package ticket

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/k1networth/itdesk/internal/shared/httpx"
)

type Handler struct {
	Log     *slog.Logger
	Store   Store
	Metrics *Metrics
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("POST /tickets", httpx.WithRoute("/tickets", http.HandlerFunc(h.CreateTicket)))
	mux.Handle("GET /tickets", httpx.WithRoute("/tickets", http.HandlerFunc(h.ListTickets)))
	mux.Handle("GET /tickets/summary", httpx.WithRoute("/tickets/summary", http.HandlerFunc(h.TicketSummary)))
	mux.Handle("POST /tickets/{id}/close", httpx.WithRoute("/tickets/{id}/close", http.HandlerFunc(h.CloseTicket)))
}

type createTicketResponse struct {
	ID int64 `json:"id"`
}

type closeTicketResponse struct {
	ID     int64 `json:"id"`
	Closed bool  `json:"closed"`
}

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req CreateTicketRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		msg := "invalid json"
		if errors.Is(err, io.EOF) {
			msg = "empty body"
		}
		WriteErrorR(w, r, http.StatusBadRequest, "validation_error", msg)
		return
	}

	if dec.More() {
		WriteErrorR(w, r, http.StatusBadRequest, "validation_error", "invalid json")
		return
	}

	if err := req.Validate(); err != nil {
		WriteErrorR(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	priority, _ := req.PriorityLevel()

	id, err := h.Store.Create(r.Context(), req.UserName, req.Issue, priority)
	if err != nil {
		var verr ValidationError
		if errors.As(err, &verr) {
			WriteErrorR(w, r, http.StatusBadRequest, "validation_error", verr.Error())
			return
		}
		h.Log.Error("ticket_create_failed", slog.String("err", err.Error()))
		WriteErrorR(w, r, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.Metrics.created(priority)
	h.Log.Info("ticket_created", slog.Int64("id", id), slog.String("priority", string(priority)))

	writeJSON(w, http.StatusCreated, createTicketResponse{ID: id})
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.Store.ListAll(r.Context())
	if err != nil {
		h.Log.Error("ticket_list_failed", slog.String("err", err.Error()))
		WriteErrorR(w, r, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, tickets)
}

func (h *Handler) TicketSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.Store.Summary(r.Context())
	if err != nil {
		h.Log.Error("ticket_summary_failed", slog.String("err", err.Error()))
		WriteErrorR(w, r, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, sum)
}

// CloseTicket answers 409 for both unknown and already closed ids; the store
// does not tell them apart.
func (h *Handler) CloseTicket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		WriteErrorR(w, r, http.StatusBadRequest, "validation_error", "id must be an integer")
		return
	}

	ok, err := h.Store.CloseTicket(r.Context(), id)
	if err != nil {
		h.Log.Error("ticket_close_failed", slog.Int64("id", id), slog.String("err", err.Error()))
		WriteErrorR(w, r, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	h.Metrics.closed(ok)
	if !ok {
		WriteErrorR(w, r, http.StatusConflict, "close_rejected", "invalid ticket id or ticket already closed")
		return
	}

	h.Log.Info("ticket_closed", slog.Int64("id", id))
	writeJSON(w, http.StatusOK, closeTicketResponse{ID: id, Closed: true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
