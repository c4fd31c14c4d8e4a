// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"milecompare/internal/app"
	"milecompare/internal/domain"
)

const maxBody = 1 << 20

type Handlers struct {
	Search   *app.SearchService
	Charts   *app.ChartQueries
	Commands *app.ChartCommands
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/search", h.search)
	s.mux.Post("/v1/charts", h.addChart)
	s.mux.Get("/v1/charts/{program}", h.getChart)
	s.mux.Get("/v1/charts/{program}/updates", h.listUpdates)
	s.mux.Post("/v1/charts/{program}/updates", h.addUpdate)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps domain sentinels to problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidChart):
		writeProblem(w, http.StatusBadRequest, "Invalid Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrStaleVersion):
		writeProblem(w, http.StatusConflict, "Stale Version", err.Error())
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// decodeBody reads a bounded JSON body into dst.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be a JSON object")
		return false
	}
	return true
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeJSON sends v with a weak ETag, answering 304 when the client already has it.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("route", routePattern(r)).Msg("failed to write body")
	}
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.Search.Search(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *Handlers) getChart(w http.ResponseWriter, r *http.Request) {
	c, err := h.Charts.Chart(r.Context(), chi.URLParam(r, "program"), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, c)
}

type chartRequest struct {
	Program       domain.Program                         `json:"program"`
	Version       int                                    `json:"version"`
	EffectiveFrom string                                 `json:"effectiveFrom"`
	Domestic      *domain.ZoneTable                      `json:"domestic,omitempty"`
	International map[domain.Region]domain.SeasonAmounts `json:"international,omitempty"`
	Note          string                                 `json:"note,omitempty"`
}

func (h *Handlers) addChart(w http.ResponseWriter, r *http.Request) {
	var req chartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	from, err := time.Parse("2006-01-02", strings.TrimSpace(req.EffectiveFrom))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Request", "effectiveFrom must be YYYY-MM-DD")
		return
	}
	c := domain.MileChart{
		Program:       req.Program,
		Version:       req.Version,
		EffectiveFrom: from,
		Domestic:      req.Domestic,
		International: req.International,
	}
	if err := h.Commands.AddChart(r.Context(), c, req.Note); err != nil {
		writeError(w, err)
		return
	}
	added, err := h.Charts.Chart(r.Context(), string(c.Program), req.EffectiveFrom)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, added)
}

func (h *Handlers) listUpdates(w http.ResponseWriter, r *http.Request) {
	out, err := h.Charts.Updates(r.Context(), chi.URLParam(r, "program"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"items": out})
}

type updateRequest struct {
	Kind    domain.UpdateKind `json:"kind"`
	Version int               `json:"version,omitempty"`
	Note    string            `json:"note"`
}

func (h *Handlers) addUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, err := h.Commands.AddUpdate(r.Context(), chi.URLParam(r, "program"), domain.ChartUpdate{
		Kind:    req.Kind,
		Version: req.Version,
		Note:    req.Note,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, u)
}
