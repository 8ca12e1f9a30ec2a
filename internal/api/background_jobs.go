package api

import (
	"context"
	"log"
	"time"
)

// SummaryJob represents a background summary-generation task
type SummaryJob struct {
	CandidateID string
	Timestamp   time.Time
}

// StartBackgroundWorkers initializes background job workers
func (a *API) StartBackgroundWorkers() {
	go a.summaryWorker()
	log.Println("[BackgroundJobs] Workers started (candidate summaries)")
}

// enqueueSummary queues summary generation without blocking the request path.
// Returns false when the queue is full.
func (a *API) enqueueSummary(candidateID string) bool {
	select {
	case a.summaryQueue <- SummaryJob{CandidateID: candidateID, Timestamp: time.Now()}:
		return true
	default:
		log.Printf("[SummaryWorker] Queue full, dropping summary job for candidate %s", candidateID)
		return false
	}
}

// enqueueSummaryForCurrent queues a summary for the candidate whose interview
// just finished.
func (a *API) enqueueSummaryForCurrent() {
	state := a.session.State()
	if state.Candidate == nil {
		return
	}
	a.enqueueSummary(state.Candidate.ID)
}

// summaryWorker processes summary jobs from the queue
func (a *API) summaryWorker() {
	log.Println("[SummaryWorker] Started")

	for job := range a.summaryQueue {
		log.Printf("[SummaryWorker] Generating summary for candidate %s", job.CandidateID)

		summary, err := a.roster.GenerateSummary(job.CandidateID)
		if err != nil {
			log.Printf("[SummaryWorker] Failed for candidate %s: %v", job.CandidateID, err)
			continue
		}

		a.persist(context.Background())
		log.Printf("[SummaryWorker] Completed candidate %s: overall score %d (took %v)",
			job.CandidateID, summary.OverallScore, time.Since(job.Timestamp))
	}
}
