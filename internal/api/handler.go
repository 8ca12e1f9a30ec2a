package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"crisp-interview/internal/interview"
	"crisp-interview/internal/models"
	"crisp-interview/internal/resume"
	"crisp-interview/internal/roster"
	"crisp-interview/internal/storage"
)

// Gateway is the AI surface the service drives. Satisfied by *llm.Gateway.
type Gateway interface {
	GenerateQuestion(req models.QuestionRequest) string
	ScoreAnswer(question, answer string, difficulty models.Difficulty) models.Score
	GenerateSummary(c *models.Candidate) models.Summary
}

type API struct {
	session      *interview.Session
	roster       *roster.Roster
	parser       *resume.Parser
	store        storage.Store
	summaryQueue chan SummaryJob
}

func NewAPI(gateway Gateway, parser *resume.Parser, store storage.Store) *API {
	a := &API{
		session:      interview.NewSession(gateway),
		roster:       roster.New(gateway),
		parser:       parser,
		store:        store,
		summaryQueue: make(chan SummaryJob, 100),
	}

	// The interviewer-side roster mirrors every interview update.
	a.session.OnCandidateUpdate = a.roster.Upsert

	return a
}

// RestoreState reloads the persisted snapshot into the roster and session.
func (a *API) RestoreState(ctx context.Context) error {
	snap, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	a.roster.Restore(snap.Candidates)
	if snap.Session != nil {
		a.session.Restore(*snap.Session)
	}
	if len(snap.Candidates) > 0 {
		log.Printf("Restored %d candidates from storage", len(snap.Candidates))
	}
	return nil
}

// persist writes the current roster and session wholesale. Persistence
// failures are logged, not surfaced: losing a save must not break the
// interview in progress.
func (a *API) persist(ctx context.Context) {
	session := a.session.Snapshot()
	snap := &storage.Snapshot{
		Candidates: a.roster.Snapshot(),
		Session:    &session,
	}
	if err := a.store.Save(ctx, snap); err != nil {
		log.Printf("Failed to persist state: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
