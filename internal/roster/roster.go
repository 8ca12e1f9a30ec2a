package roster

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"crisp-interview/internal/models"
)

var ErrNotFound = errors.New("candidate not found")

// SortKey selects the roster ordering.
type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByScore    SortKey = "score"
	SortByName     SortKey = "name"
	SortByProgress SortKey = "progress"
)

// Summarizer produces whole-interview summaries. Satisfied by *llm.Gateway.
type Summarizer interface {
	GenerateSummary(c *models.Candidate) models.Summary
}

// Roster is the interviewer-side candidate list. It keeps the current sort
// selection so that re-selecting the active key toggles between descending
// and ascending, mirroring a column-header click.
type Roster struct {
	mu sync.Mutex

	candidates []models.Candidate
	sortBy     SortKey
	ascending  bool

	summarizer  Summarizer
	summarizing map[string]bool
	now         func() time.Time
}

func New(summarizer Summarizer) *Roster {
	return &Roster{
		sortBy:      SortByDate,
		summarizer:  summarizer,
		summarizing: make(map[string]bool),
		now:         time.Now,
	}
}

// Upsert inserts the candidate or replaces the record with the same id.
func (r *Roster) Upsert(c models.Candidate) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.candidates {
		if r.candidates[i].ID == c.ID {
			r.candidates[i] = c
			return
		}
	}
	r.candidates = append(r.candidates, c)
}

// Get returns the candidate with the given id.
func (r *Roster) Get(id string) (models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.candidates {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Candidate{}, ErrNotFound
}

// Delete removes the candidate with the given id.
func (r *Roster) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.candidates {
		if r.candidates[i].ID == id {
			r.candidates = append(r.candidates[:i], r.candidates[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Clear empties the roster.
func (r *Roster) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates = nil
}

// SelectSort applies a sort key. Re-selecting the active key flips the
// direction; switching keys resets to descending.
func (r *Roster) SelectSort(key SortKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sortBy == key {
		r.ascending = !r.ascending
	} else {
		r.sortBy = key
		r.ascending = false
	}
}

// Sort reports the active sort key and direction.
func (r *Roster) Sort() (SortKey, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortBy, r.ascending
}

// List returns the candidates matching the query, ordered by the active sort
// selection. The query matches name and email case-insensitively and phone
// verbatim; a blank query matches everything.
func (r *Roster) List(query string) []models.Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Candidate, 0, len(r.candidates))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, c := range r.candidates {
		if q == "" ||
			strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(c.Phone, query) {
			out = append(out, c)
		}
	}

	sortCandidates(out, r.sortBy, r.ascending)
	return out
}

var progressOrder = map[models.Progress]int{
	models.ProgressNotStarted: 0,
	models.ProgressInProgress: 1,
	models.ProgressCompleted:  2,
}

func sortCandidates(cs []models.Candidate, key SortKey, ascending bool) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if !ascending {
			a, b = b, a
		}
		switch key {
		case SortByName:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByScore:
			return a.Score < b.Score
		case SortByProgress:
			return progressOrder[a.Progress] < progressOrder[b.Progress]
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}

// FixProgress repairs candidates left in_progress by an interrupted session
// even though every question was asked and reached. Safe to run repeatedly:
// already-consistent records are untouched.
func (r *Roster) FixProgress() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	fixed := 0
	for i := range r.candidates {
		c := &r.candidates[i]
		if c.Progress != models.ProgressInProgress ||
			len(c.Questions) != models.TotalQuestions ||
			c.CurrentQuestion < models.TotalQuestions-1 {
			continue
		}
		c.Progress = models.ProgressCompleted
		if c.CompletedAt == nil {
			now := r.now()
			c.CompletedAt = &now
		}
		if c.Score == 0 && len(c.Questions) > 0 {
			sum := 0
			for _, q := range c.Questions {
				sum += q.Score
			}
			c.Score = int(float64(sum)/float64(len(c.Questions)) + 0.5)
		}
		fixed++
	}
	return fixed
}

// GenerateSummary runs the summarizer for one candidate and stores the result,
// overwriting the candidate's score with the summary's overall score. At most
// one summary per candidate runs at a time.
func (r *Roster) GenerateSummary(id string) (models.Summary, error) {
	r.mu.Lock()
	var target *models.Candidate
	for i := range r.candidates {
		if r.candidates[i].ID == id {
			target = &r.candidates[i]
			break
		}
	}
	if target == nil {
		r.mu.Unlock()
		return models.Summary{}, ErrNotFound
	}
	if r.summarizing[id] {
		r.mu.Unlock()
		return models.Summary{}, errors.New("summary generation already in progress")
	}
	r.summarizing[id] = true
	snapshot := *target
	r.mu.Unlock()

	summary := r.summarizer.GenerateSummary(&snapshot)

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.summarizing, id)
	for i := range r.candidates {
		if r.candidates[i].ID == id {
			r.candidates[i].Summary = &summary
			r.candidates[i].Score = summary.OverallScore
			return summary, nil
		}
	}
	return models.Summary{}, ErrNotFound
}

// Snapshot returns a copy of every candidate for persistence.
func (r *Roster) Snapshot() []models.Candidate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Candidate(nil), r.candidates...)
}

// Restore replaces the roster contents, typically at startup.
func (r *Roster) Restore(cs []models.Candidate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates = append([]models.Candidate(nil), cs...)
}
