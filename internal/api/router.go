package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRouter(a *API) http.Handler {
	mux := http.NewServeMux()

	// Swagger documentation - must be registered first
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Health check (for Railway, k8s, etc.)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Interviewee endpoints
	mux.HandleFunc("/api/interview/start", a.StartInterviewHandler)
	mux.HandleFunc("/api/interview/field", a.UpdateFieldHandler)
	mux.HandleFunc("/api/interview/resume", a.ResumeUploadHandler)
	mux.HandleFunc("/api/interview/begin", a.BeginInterviewHandler)
	mux.HandleFunc("/api/interview/question", a.NextQuestionHandler)
	mux.HandleFunc("/api/interview/answer", a.SubmitAnswerHandler)
	mux.HandleFunc("/api/interview/tick", a.TickHandler)
	mux.HandleFunc("/api/interview/pause", a.PauseInterviewHandler)
	mux.HandleFunc("/api/interview/resume-session", a.ResumeInterviewHandler)
	mux.HandleFunc("/api/interview/clear", a.ClearInterviewHandler)
	mux.HandleFunc("/api/interview/state", a.SessionStateHandler)

	// Interviewer endpoints
	mux.HandleFunc("/api/candidates", a.ListCandidatesHandler)
	mux.HandleFunc("/api/candidates/sort", a.SelectSortHandler)
	mux.HandleFunc("/api/candidates/fix-progress", a.FixProgressHandler)
	mux.HandleFunc("/api/candidates/", a.CandidateHandler)

	return mux
}
