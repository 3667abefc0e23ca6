package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tripwise/internal/app"
	"tripwise/internal/domain"
)

type Handlers struct {
	Q       *app.QueryService
	Setup   *app.TripSetupService
	Chat    *app.ChatService
	Handoff *app.HandoffService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Route("/v1", func(r chi.Router) {
		r.Get("/destinations", h.listDestinations)
		r.Get("/destinations/{id}", h.getDestination)
		r.Get("/destinations/{id}/confidence", h.getConfidence)
		r.Get("/itineraries", h.listItineraries)
		r.Get("/tips", h.listTips)
		r.Get("/plans", h.listPlans)
		r.Get("/summary", h.getSummary)

		r.Group(func(r chi.Router) {
			r.Use(Session)
			r.Get("/trip-setup", h.getTripSetup)
			r.Patch("/trip-setup", h.patchTripSetup)
			r.Delete("/trip-setup", h.clearTripSetup)

			r.Get("/chat/opening", h.chatOpening)
			r.Post("/chat", h.chat)
			r.Post("/chat/summarize", h.summarize)
			r.Get("/handoff", h.takeHandoff)
		})
	})
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

// writeCached serves catalog reads; they never change while the process runs.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not encode response")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

// ---- catalog ----

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	writeCached(w, r, h.Q.FilterDestinations(r.URL.Query().Get("q")))
}

func (h *Handlers) getDestination(w http.ResponseWriter, r *http.Request) {
	d, err := h.Q.GetDestination(chi.URLParam(r, "id"))
	if err != nil {
		writeProblem(w, http.StatusNotFound, "Not Found", "destination not found")
		return
	}
	writeCached(w, r, d)
}

func (h *Handlers) getConfidence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, map[string]any{
		"destinationId":   id,
		"confidenceScore": h.Q.GetConfidenceScore(id),
	})
}

// parseItineraryQuery reads destination_id, max_budget and tag.
func parseItineraryQuery(r *http.Request) (domain.ItineraryQuery, error) {
	var q domain.ItineraryQuery
	v := r.URL.Query()
	if s := strings.TrimSpace(v.Get("destination_id")); s != "" {
		q.DestinationID = &s
	}
	if s := strings.TrimSpace(v.Get("max_budget")); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f < 0 || math.IsNaN(f) {
			return q, &domain.ValidationError{Field: "max_budget", Reason: "must be a non-negative number"}
		}
		q.MaxBudget = &f
	}
	if s := strings.TrimSpace(v.Get("tag")); s != "" {
		q.Tag = &s
	}
	return q, nil
}

func (h *Handlers) listItineraries(w http.ResponseWriter, r *http.Request) {
	q, err := parseItineraryQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	writeCached(w, r, h.Q.FilterItineraries(q))
}

func (h *Handlers) listTips(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Query().Get("platform")
	if p != "" {
		if _, ok := domain.ParsePlatform(p); !ok {
			writeProblem(w, http.StatusBadRequest, "Invalid platform", "platform must be one of instagram, tiktok, youtube, blog")
			return
		}
	}
	writeCached(w, r, h.Q.FilterTips(p))
}

func (h *Handlers) listPlans(w http.ResponseWriter, r *http.Request) {
	q, err := parseItineraryQuery(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid query", err.Error())
		return
	}
	writeCached(w, r, h.Q.FilterTripPlans(q))
}

func (h *Handlers) getSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, h.Q.BuildVerifiedContextSummary())
}

// ---- trip setup ----

func (h *Handlers) getTripSetup(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Setup.Load(r.Context(), sessionFrom(r.Context())))
}

func (h *Handlers) patchTripSetup(w http.ResponseWriter, r *http.Request) {
	var patch domain.TripSetupPatch
	if err := decodeBody(r, &patch); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	ts, err := h.Setup.Update(r.Context(), sessionFrom(r.Context()), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

func (h *Handlers) clearTripSetup(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Setup.Clear(r.Context(), sessionFrom(r.Context())))
}

// ---- chat ----

type chatBody struct {
	Message             string               `json:"message"`
	ConversationHistory []domain.ChatMessage `json:"conversationHistory"`
}

func (h *Handlers) chatOpening(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": h.Chat.OpeningMessage(r.Context(), sessionFrom(r.Context())),
	})
}

func (h *Handlers) chat(w http.ResponseWriter, r *http.Request) {
	var body chatBody
	if err := decodeBody(r, &body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	reply, err := h.Chat.Send(r.Context(), sessionFrom(r.Context()), body.Message, body.ConversationHistory)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "response": reply.Response})
}

func (h *Handlers) summarize(w http.ResponseWriter, r *http.Request) {
	var body chatBody
	if err := decodeBody(r, &body); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return
	}
	out, err := h.Chat.Summarize(r.Context(), sessionFrom(r.Context()), body.ConversationHistory)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"preferences": out.Preferences,
		"tripPlans":   out.Plans,
	})
}

func (h *Handlers) takeHandoff(w http.ResponseWriter, r *http.Request) {
	out, ok := h.Handoff.Take(r.Context(), sessionFrom(r.Context()))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "no pending handoff")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- helpers ----

func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeError(w http.ResponseWriter, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusUnprocessableEntity, "Validation failed", ve.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrChatUnavailable):
		writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "chat is not configured")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusBadGateway, "Upstream error", "the planner service could not complete the request")
	}
}
