package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"

	"crisp-interview/internal/interview"
	"crisp-interview/internal/resume"
)

// StartInterviewHandler begins a fresh candidate session
// @Summary Start a new interview session
// @Description Create a new candidate record; omitted contact fields are preserved from the previous session
// @Tags interview
// @Accept json
// @Produce json
// @Param body body object{name=string,email=string,phone=string} false "Initial contact details"
// @Success 200 {object} interview.State
// @Failure 400 {object} map[string]string
// @Router /interview/start [post]
func (a *API) StartInterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	state := a.session.StartNew(req.Name, req.Email, req.Phone)
	a.persist(r.Context())
	writeJSON(w, http.StatusOK, state)
}

// UpdateFieldHandler sets one contact field on the current candidate
// @Summary Update a candidate contact field
// @Description Set name, email or phone; non-empty values are validated before acceptance
// @Tags interview
// @Accept json
// @Produce json
// @Param body body object{field=string,value=string} true "Field update"
// @Success 200 {object} interview.State
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /interview/field [post]
func (a *API) UpdateFieldHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Value != "" {
		valid := true
		switch req.Field {
		case "name":
			valid = resume.ValidateName(req.Value)
		case "email":
			valid = resume.ValidateEmail(req.Value)
		case "phone":
			valid = resume.ValidatePhone(req.Value)
		}
		if !valid {
			writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid %s", req.Field))
			return
		}
	}

	state, err := a.session.UpdateField(req.Field, req.Value)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.persist(r.Context())
	writeJSON(w, http.StatusOK, state)
}

// ResumeUploadHandler attaches an uploaded résumé to the current candidate
// @Summary Upload and parse a résumé
// @Description Upload a résumé (PDF/DOC/DOCX), extract fields heuristically and merge them into the candidate
// @Tags interview
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Résumé file (PDF, DOC or DOCX)"
// @Success 200 {object} interview.State
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /interview/resume [post]
func (a *API) ResumeUploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// Parse multipart form (max 10MB)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid (max 10MB)")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	data, err := a.parser.ParseFile(header.Filename, file)
	if err != nil {
		var parseErr *resume.ParseError
		if errors.As(err, &parseErr) {
			writeError(w, http.StatusBadRequest, parseErr.Error())
			return
		}
		log.Printf("Resume parse failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to process resume")
		return
	}

	log.Printf("Resume parsed: %s (%d bytes text)", filepath.Base(data.Filename), len(data.Text))

	state, err := a.session.SetResumeData(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.persist(r.Context())
	writeJSON(w, http.StatusOK, state)
}

// BeginInterviewHandler starts the timed interview
// @Summary Begin the timed interview
// @Description Transition the candidate to in_progress; fails while contact fields are missing
// @Tags interview
// @Produce json
// @Success 200 {object} interview.State
// @Failure 400 {object} map[string]string
// @Router /interview/begin [post]
func (a *API) BeginInterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	state, err := a.session.Begin()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.persist(r.Context())
	writeJSON(w, http.StatusOK, state)
}

// NextQuestionHandler generates the next question
// @Summary Generate the next interview question
// @Description Issue the question for the current index and start its countdown
// @Tags interview
// @Produce json
// @Success 200 {object} models.InterviewQuestion
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /interview/question [post]
func (a *API) NextQuestionHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q, err := a.session.NextQuestion()
	if err != nil {
		if errors.Is(err, interview.ErrStale) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a.persist(r.Context())
	writeJSON(w, http.StatusOK, q)
}

// SubmitAnswerHandler scores the answer to the current question
// @Summary Submit an answer
// @Description Score the answer, advance the interview and finalize after the last question
// @Tags interview
// @Accept json
// @Produce json
// @Param body body object{answer=string} true "Answer text"
// @Success 200 {object} interview.SubmitResult
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /interview/answer [post]
func (a *API) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		Answer string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := a.session.SubmitAnswer(req.Answer)
	if err != nil {
		if errors.Is(err, interview.ErrStale) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if result.Completed {
		a.enqueueSummaryForCurrent()
	}
	a.persist(r.Context())
	writeJSON(w, http.StatusOK, result)
}

// TickHandler advances the countdown by one second
// @Summary Advance the question countdown
// @Description Drive the per-question timer; the tick that exhausts the budget auto-submits an empty answer
// @Tags interview
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /interview/tick [post]
func (a *API) TickHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	timer, expired := a.session.Tick()
	resp := map[string]interface{}{
		"timer":   timer,
		"expired": expired,
	}

	if expired {
		result, err := a.session.AutoSubmit()
		if err != nil {
			log.Printf("Auto-submit after expiry failed: %v", err)
		} else {
			resp["result"] = result
			if result.Completed {
				a.enqueueSummaryForCurrent()
			}
		}
		a.persist(r.Context())
	}

	writeJSON(w, http.StatusOK, resp)
}

// PauseInterviewHandler suspends the countdown
// @Summary Pause the interview
// @Tags interview
// @Produce json
// @Success 200 {object} interview.State
// @Router /interview/pause [post]
func (a *API) PauseInterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	state := a.session.Pause()
	a.persist(r.Context())
	writeJSON(w, http.StatusOK, state)
}

// ResumeInterviewHandler lifts a pause
// @Summary Resume a paused interview
// @Tags interview
// @Produce json
// @Success 200 {object} interview.State
// @Router /interview/resume-session [post]
func (a *API) ResumeInterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	state := a.session.Resume()
	a.persist(r.Context())
	writeJSON(w, http.StatusOK, state)
}

// ClearInterviewHandler discards the interview in progress
// @Summary Clear the current interview
// @Description Drop the in-flight interview but keep contact details and résumé data under a new candidate id
// @Tags interview
// @Produce json
// @Success 200 {object} interview.State
// @Router /interview/clear [post]
func (a *API) ClearInterviewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	state := a.session.Clear()
	a.persist(r.Context())
	writeJSON(w, http.StatusOK, state)
}

// SessionStateHandler returns the current session view
// @Summary Get the interview session state
// @Tags interview
// @Produce json
// @Success 200 {object} interview.State
// @Router /interview/state [get]
func (a *API) SessionStateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, a.session.State())
}
