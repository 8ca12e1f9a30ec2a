package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crisp-interview/internal/interview"
	"crisp-interview/internal/models"
	"crisp-interview/internal/resume"
	"crisp-interview/internal/storage"
)

type fakeGateway struct{ questions int }

func (f *fakeGateway) GenerateQuestion(req models.QuestionRequest) string {
	f.questions++
	return fmt.Sprintf("Question %d (%s)", f.questions, req.Difficulty)
}

func (f *fakeGateway) ScoreAnswer(question, answer string, d models.Difficulty) models.Score {
	if answer == "" {
		return models.Score{Score: 0, Feedback: "No answer was provided for this question."}
	}
	return models.Score{Score: 80, Feedback: "good"}
}

func (f *fakeGateway) GenerateSummary(c *models.Candidate) models.Summary {
	return models.Summary{Summary: "summary text", OverallScore: 75,
		Strengths: []string{"s"}, Improvements: []string{"i"}}
}

func newTestServer(t *testing.T) (*httptest.Server, *API) {
	t.Helper()
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	a := NewAPI(&fakeGateway{}, resume.NewParser(t.TempDir()), store)
	a.StartBackgroundWorkers()
	srv := httptest.NewServer(NewRouter(a))
	t.Cleanup(srv.Close)
	return srv, a
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestInterviewFlowEndToEnd(t *testing.T) {
	srv, _ := newTestServer(t)

	// Start with a missing phone number.
	resp := postJSON(t, srv.URL+"/api/interview/start",
		map[string]string{"name": "Jane Doe", "email": "jane@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state interview.State
	decode(t, resp, &state)
	assert.Equal(t, []string{"phone"}, state.MissingFields)

	// Begin must refuse while a field is missing.
	resp = postJSON(t, srv.URL+"/api/interview/begin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// An invalid phone is rejected without touching the candidate.
	resp = postJSON(t, srv.URL+"/api/interview/field",
		map[string]string{"field": "phone", "value": "123"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/api/interview/field",
		map[string]string{"field": "phone", "value": "555-123-4567"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &state)
	assert.Empty(t, state.MissingFields)

	resp = postJSON(t, srv.URL+"/api/interview/begin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// First question: easy, 20 seconds.
	resp = postJSON(t, srv.URL+"/api/interview/question", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var q models.InterviewQuestion
	decode(t, resp, &q)
	assert.Equal(t, models.DifficultyEasy, q.Difficulty)
	assert.Equal(t, 20, q.TimerSeconds)

	resp = postJSON(t, srv.URL+"/api/interview/answer",
		map[string]string{"answer": "a detailed answer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var result interview.SubmitResult
	decode(t, resp, &result)
	assert.Equal(t, 80, result.Score.Score)
	assert.False(t, result.Completed)

	// The roster mirrors the in-progress candidate.
	resp, err := http.Get(srv.URL + "/api/candidates")
	require.NoError(t, err)
	var candidates []models.Candidate
	decode(t, resp, &candidates)
	require.Len(t, candidates, 1)
	assert.Equal(t, models.ProgressInProgress, candidates[0].Progress)
}

func TestTickExpiryAutoSubmits(t *testing.T) {
	srv, _ := newTestServer(t)

	postJSON(t, srv.URL+"/api/interview/start",
		map[string]string{"name": "Jane Doe", "email": "jane@example.com", "phone": "555-123-4567"}).Body.Close()
	postJSON(t, srv.URL+"/api/interview/begin", nil).Body.Close()
	postJSON(t, srv.URL+"/api/interview/question", nil).Body.Close()

	var tick struct {
		Timer   models.TimerState `json:"timer"`
		Expired bool              `json:"expired"`
	}
	for i := 0; i < 20; i++ {
		resp := postJSON(t, srv.URL+"/api/interview/tick", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		decode(t, resp, &tick)
	}
	assert.True(t, tick.Expired)
	assert.Zero(t, tick.Timer.TimeLeft)

	resp, err := http.Get(srv.URL + "/api/interview/state")
	require.NoError(t, err)
	var state interview.State
	decode(t, resp, &state)
	require.NotEmpty(t, state.Candidate.Questions)
	first := state.Candidate.Questions[0]
	assert.True(t, first.Answered)
	assert.True(t, first.AutoSubmitted)
	assert.Zero(t, first.Score)
	assert.Equal(t, 1, state.Candidate.CurrentQuestion)
}

func TestCandidateEndpoints(t *testing.T) {
	srv, a := newTestServer(t)

	a.roster.Upsert(models.Candidate{ID: "c1", Name: "Alice", Progress: models.ProgressCompleted, Score: 80})
	a.roster.Upsert(models.Candidate{ID: "c2", Name: "Bob", Progress: models.ProgressCompleted, Score: 90})

	// Sort by score descending, then toggle to ascending.
	resp := postJSON(t, srv.URL+"/api/candidates/sort", map[string]string{"key": "score"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err := http.Get(srv.URL + "/api/candidates")
	require.NoError(t, err)
	var list []models.Candidate
	decode(t, resp, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "c2", list[0].ID)

	resp = postJSON(t, srv.URL+"/api/candidates/sort", map[string]string{"key": "score"})
	var sortState struct {
		Ascending bool `json:"ascending"`
	}
	decode(t, resp, &sortState)
	assert.True(t, sortState.Ascending)

	resp = postJSON(t, srv.URL+"/api/candidates/sort", map[string]string{"key": "height"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Fetch and delete by id.
	resp, err = http.Get(srv.URL + "/api/candidates/c1")
	require.NoError(t, err)
	var c models.Candidate
	decode(t, resp, &c)
	assert.Equal(t, "Alice", c.Name)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/candidates/c1", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/api/candidates/c1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestSummaryEndpoint(t *testing.T) {
	srv, a := newTestServer(t)
	a.roster.Upsert(models.Candidate{ID: "c1", Name: "Alice", Progress: models.ProgressCompleted, Score: 80})

	resp := postJSON(t, srv.URL+"/api/candidates/c1/summary", nil)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()

	require.Eventually(t, func() bool {
		c, err := a.roster.Get("c1")
		return err == nil && c.Summary != nil
	}, 2*time.Second, 10*time.Millisecond)

	c, err := a.roster.Get("c1")
	require.NoError(t, err)
	assert.Equal(t, "summary text", c.Summary.Summary)
	assert.Equal(t, 75, c.Score, "summary overwrites the score")

	resp = postJSON(t, srv.URL+"/api/candidates/missing/summary", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestStatePersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewFileStore(filepath.Join(dir, "state.json"))
	require.NoError(t, err)

	a := NewAPI(&fakeGateway{}, resume.NewParser(dir), store)
	srv := httptest.NewServer(NewRouter(a))
	defer srv.Close()

	postJSON(t, srv.URL+"/api/interview/start",
		map[string]string{"name": "Jane Doe", "email": "jane@example.com", "phone": "555-123-4567"}).Body.Close()
	postJSON(t, srv.URL+"/api/interview/begin", nil).Body.Close()
	postJSON(t, srv.URL+"/api/interview/question", nil).Body.Close()

	// A fresh process over the same store sees the interrupted session.
	restarted := NewAPI(&fakeGateway{}, resume.NewParser(dir), store)
	require.NoError(t, restarted.RestoreState(context.Background()))

	state := restarted.session.State()
	require.NotNil(t, state.Candidate)
	assert.Equal(t, "Jane Doe", state.Candidate.Name)
	assert.Len(t, state.Candidate.Questions, 1)
	assert.False(t, state.Timer.Active, "restored countdown waits for resume")
	assert.NotNil(t, state.Candidate.PausedAt)
	assert.Len(t, restarted.roster.Snapshot(), 1)
}
