package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"crisp-interview/internal/roster"
)

// ListCandidatesHandler returns the searchable, sorted roster
// @Summary List candidates
// @Description List candidates filtered by a search query and ordered by the active sort selection
// @Tags candidates
// @Produce json
// @Param query query string false "Substring match against name, email or phone"
// @Success 200 {array} models.Candidate
// @Router /candidates [get]
func (a *API) ListCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, a.roster.List(r.URL.Query().Get("query")))
	case http.MethodDelete:
		a.roster.Clear()
		a.persist(r.Context())
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// SelectSortHandler applies a roster sort key
// @Summary Select the roster sort key
// @Description Re-selecting the active key flips the direction; switching keys resets to descending
// @Tags candidates
// @Accept json
// @Produce json
// @Param body body object{key=string} true "Sort key: date, score, name or progress"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /candidates/sort [post]
func (a *API) SelectSortHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch roster.SortKey(req.Key) {
	case roster.SortByDate, roster.SortByScore, roster.SortByName, roster.SortByProgress:
	default:
		writeError(w, http.StatusBadRequest, "unknown sort key (expected date, score, name or progress)")
		return
	}

	a.roster.SelectSort(roster.SortKey(req.Key))
	key, ascending := a.roster.Sort()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sort_by":   key,
		"ascending": ascending,
	})
}

// FixProgressHandler repairs candidates stuck in_progress
// @Summary Fix inconsistent candidate progress
// @Description Mark candidates completed when every question was asked but an interruption left them in_progress
// @Tags candidates
// @Produce json
// @Success 200 {object} map[string]int
// @Router /candidates/fix-progress [post]
func (a *API) FixProgressHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	fixed := a.roster.FixProgress()
	if fixed > 0 {
		a.persist(r.Context())
	}
	writeJSON(w, http.StatusOK, map[string]int{"fixed": fixed})
}

// CandidateHandler serves one candidate by id: fetch, delete, or queue a
// summary for /api/candidates/{id}/summary.
// @Summary Get, delete or summarize a candidate
// @Tags candidates
// @Produce json
// @Param id path string true "Candidate id"
// @Success 200 {object} models.Candidate
// @Failure 404 {object} map[string]string
// @Router /candidates/{id} [get]
func (a *API) CandidateHandler(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/candidates/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing candidate id")
		return
	}

	if sub == "summary" {
		a.summaryRequestHandler(w, r, id)
		return
	}
	if sub != "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		c, err := a.roster.Get(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "candidate not found")
			return
		}
		writeJSON(w, http.StatusOK, c)
	case http.MethodDelete:
		if err := a.roster.Delete(id); err != nil {
			writeError(w, http.StatusNotFound, "candidate not found")
			return
		}
		a.persist(r.Context())
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// summaryRequestHandler queues asynchronous summary generation
// @Summary Generate an AI summary for a candidate
// @Description Queue background summary generation; poll the candidate record for the result
// @Tags candidates
// @Produce json
// @Param id path string true "Candidate id"
// @Success 202 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /candidates/{id}/summary [post]
func (a *API) summaryRequestHandler(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if _, err := a.roster.Get(id); err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			writeError(w, http.StatusNotFound, "candidate not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !a.enqueueSummary(id) {
		writeError(w, http.StatusServiceUnavailable, "summary queue is full, try again later")
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}
