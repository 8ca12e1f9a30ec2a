package interview

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"crisp-interview/internal/models"
)

var (
	ErrNoCandidate   = errors.New("no active candidate")
	ErrMissingFields = errors.New("required candidate fields are missing")
	ErrNotActive     = errors.New("interview is not active")
	ErrNoQuestion    = errors.New("no current question")
	ErrAllQuestions  = errors.New("all questions have been asked")
	ErrStale         = errors.New("interview state changed during generation")
)

// Examiner produces questions and scores answers. Satisfied by *llm.Gateway.
type Examiner interface {
	GenerateQuestion(req models.QuestionRequest) string
	ScoreAnswer(question, answer string, difficulty models.Difficulty) models.Score
}

// Session is the single in-flight interview. All operations are serialized
// behind a mutex; the two blocking Examiner calls release it while the
// provider round-trip is in flight and re-validate state afterwards, so a
// reset or restart during generation discards the late result instead of
// attaching it to the wrong candidate.
type Session struct {
	mu sync.Mutex

	candidate *models.Candidate
	messages  []models.ChatMessage
	timer     models.TimerState
	active    bool
	missing   []string

	generating bool
	submitting bool

	examiner Examiner
	now      func() time.Time

	// OnCandidateUpdate receives a copy of the candidate after every
	// roster-relevant change. Optional.
	OnCandidateUpdate func(models.Candidate)
}

func NewSession(examiner Examiner) *Session {
	return &Session{
		examiner: examiner,
		now:      time.Now,
	}
}

// SubmitResult is what a scored answer produced.
type SubmitResult struct {
	Score     models.Score `json:"score"`
	Completed bool         `json:"completed"`
	// FinalScore is the whole-interview score, set only when Completed.
	FinalScore int `json:"final_score,omitempty"`
}

// State is a read-only view of the session for transport.
type State struct {
	Candidate     *models.Candidate    `json:"candidate,omitempty"`
	Messages      []models.ChatMessage `json:"messages"`
	Timer         models.TimerState    `json:"timer"`
	Active        bool                 `json:"active"`
	MissingFields []string             `json:"missing_fields"`
	Generating    bool                 `json:"generating"`
	Submitting    bool                 `json:"submitting"`
}

// StartNew begins a fresh candidate record. Empty arguments preserve the
// matching fields of the current candidate, so restarting never loses
// contact details that were already collected.
func (s *Session) StartNew(name, email, phone string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.candidate
	if name == "" && prev != nil {
		name = prev.Name
	}
	if email == "" && prev != nil {
		email = prev.Email
	}
	if phone == "" && prev != nil {
		phone = prev.Phone
	}

	c := &models.Candidate{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		CreatedAt: s.now(),
		Progress:  models.ProgressNotStarted,
	}
	if prev != nil {
		c.ID = prev.ID
		c.CreatedAt = prev.CreatedAt
		c.ResumeData = prev.ResumeData
	}
	s.candidate = c
	s.active = false
	s.timer = models.TimerState{}
	s.missing = missingContactFields(c)
	s.messages = nil

	if len(s.missing) > 0 {
		s.addMessage(models.MessageSystem, fmt.Sprintf(
			"Welcome to Crisp Interview! Before we begin, I need to collect some information from you. Please provide %s to proceed with the interview.",
			joinFieldNames(s.missing)))
	} else {
		s.addMessage(models.MessageSystem, fmt.Sprintf(
			"Welcome %s! I'll be conducting your technical interview today. We'll go through %d questions of varying difficulty. Begin the interview when you're ready!",
			c.Name, models.TotalQuestions))
	}

	return s.stateLocked()
}

// SetResumeData attaches parsed résumé data to the current candidate. Contact
// fields are only filled where still blank; skills, experience and tenure are
// always refreshed, and the candidate's role is derived from the skill set.
func (s *Session) SetResumeData(rd *models.ResumeData) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.candidate
	if c == nil {
		return State{}, ErrNoCandidate
	}

	c.ResumeData = rd
	pf := rd.ParsedFields

	var filled []string
	if pf.Name != "" && strings.TrimSpace(c.Name) == "" {
		c.Name = pf.Name
		filled = append(filled, "name")
	}
	if pf.Email != "" && strings.TrimSpace(c.Email) == "" {
		c.Email = pf.Email
		filled = append(filled, "email")
	}
	if pf.Phone != "" && strings.TrimSpace(c.Phone) == "" {
		c.Phone = pf.Phone
		filled = append(filled, "phone")
	}

	if len(pf.Skills) > 0 {
		c.Skills = pf.Skills
		c.Role = deriveRole(pf.Skills)
	}
	if len(pf.Experience) > 0 {
		c.Experience = pf.Experience
	}
	if pf.YearsOfExperience > 0 {
		c.YearsOfExperience = pf.YearsOfExperience
	}

	s.missing = missingContactFields(c)

	if len(filled) > 0 || len(pf.Skills) > 0 || len(pf.Experience) > 0 {
		s.addMessage(models.MessageSystem, resumeAnalysisMessage(c, pf, filled, s.missing))
	}

	return s.stateLocked(), nil
}

// UpdateField sets one contact field and recomputes what is still missing.
func (s *Session) UpdateField(field, value string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.candidate
	if c == nil {
		return State{}, ErrNoCandidate
	}

	switch field {
	case "name":
		c.Name = value
	case "email":
		c.Email = value
	case "phone":
		c.Phone = value
	default:
		return State{}, fmt.Errorf("unknown candidate field %q", field)
	}

	s.missing = missingContactFields(c)

	if strings.TrimSpace(value) != "" {
		msg := fmt.Sprintf("Great! I've got your %s.", fieldName(field))
		if len(s.missing) == 0 {
			msg += " All information collected! You can now begin the interview."
		} else {
			msg += " Still need: " + joinFieldNames(s.missing) + "."
		}
		s.addMessage(models.MessageSystem, msg)
	}

	return s.stateLocked(), nil
}

// Begin starts the timed interview. All contact fields must be collected.
func (s *Session) Begin() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.candidate
	if c == nil {
		return State{}, ErrNoCandidate
	}
	if len(s.missing) > 0 {
		return State{}, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(s.missing, ", "))
	}

	now := s.now()
	c.Progress = models.ProgressInProgress
	c.StartedAt = &now
	c.CurrentQuestion = 0
	c.Questions = nil
	s.active = true

	s.publishLocked()
	return s.stateLocked(), nil
}

// NextQuestion generates and issues the question for the current index and
// starts its countdown. The provider call runs outside the lock; if the
// session moved on meanwhile the generated question is discarded.
func (s *Session) NextQuestion() (models.InterviewQuestion, error) {
	s.mu.Lock()
	c := s.candidate
	if c == nil || !s.active {
		s.mu.Unlock()
		return models.InterviewQuestion{}, ErrNotActive
	}
	idx := c.CurrentQuestion
	if idx >= models.TotalQuestions {
		s.mu.Unlock()
		return models.InterviewQuestion{}, ErrAllQuestions
	}
	if len(c.Questions) > idx {
		s.mu.Unlock()
		return models.InterviewQuestion{}, fmt.Errorf("question %d already issued", idx+1)
	}

	candID := c.ID
	difficulty := models.DifficultyPlan[idx]
	previous := make([]string, 0, len(c.Questions))
	for _, q := range c.Questions {
		previous = append(previous, q.Text)
	}
	req := models.QuestionRequest{
		Difficulty:        difficulty,
		Role:              c.CandidateProfile().Role,
		PreviousQuestions: previous,
		Profile:           c.CandidateProfile(),
	}
	s.generating = true
	s.mu.Unlock()

	text := s.examiner.GenerateQuestion(req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false

	if s.candidate == nil || s.candidate.ID != candID || !s.active || s.candidate.CurrentQuestion != idx {
		return models.InterviewQuestion{}, ErrStale
	}
	// A concurrent call may have issued this index while generation ran.
	if len(s.candidate.Questions) > idx {
		return models.InterviewQuestion{}, ErrStale
	}

	now := s.now()
	q := models.InterviewQuestion{
		ID:           uuid.NewString(),
		Text:         text,
		Difficulty:   difficulty,
		TimerSeconds: models.TimerBudget(difficulty),
		StartedAt:    &now,
	}
	s.candidate.Questions = append(s.candidate.Questions, q)
	s.timer = models.TimerState{
		Active:            true,
		TimeLeft:          q.TimerSeconds,
		TotalTime:         q.TimerSeconds,
		QuestionStartedAt: &now,
	}
	s.addMessage(models.MessageQuestion, text)

	return q, nil
}

// SubmitAnswer scores the answer to the current question and advances the
// interview, finalizing it after the last question.
func (s *Session) SubmitAnswer(answer string) (SubmitResult, error) {
	return s.submit(answer, false)
}

// AutoSubmit records an expired question as an empty, auto-submitted answer.
func (s *Session) AutoSubmit() (SubmitResult, error) {
	return s.submit("", true)
}

func (s *Session) submit(answer string, auto bool) (SubmitResult, error) {
	s.mu.Lock()
	c := s.candidate
	if c == nil || !s.active {
		s.mu.Unlock()
		return SubmitResult{}, ErrNotActive
	}
	idx := c.CurrentQuestion
	if idx >= len(c.Questions) {
		s.mu.Unlock()
		return SubmitResult{}, ErrNoQuestion
	}
	if c.Questions[idx].Answered {
		s.mu.Unlock()
		return SubmitResult{}, fmt.Errorf("question %d already answered", idx+1)
	}

	candID := c.ID
	question := c.Questions[idx]
	s.timer.Active = false
	s.submitting = true
	s.mu.Unlock()

	score := s.examiner.ScoreAnswer(question.Text, answer, question.Difficulty)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if s.candidate == nil || s.candidate.ID != candID || s.candidate.CurrentQuestion != idx {
		return SubmitResult{}, ErrStale
	}
	c = s.candidate
	if idx >= len(c.Questions) || c.Questions[idx].Answered {
		return SubmitResult{}, ErrStale
	}

	now := s.now()
	q := &c.Questions[idx]
	q.Answer = answer
	q.Answered = true
	q.AutoSubmitted = auto
	q.Score = score.Score
	q.Feedback = score.Feedback
	q.AnsweredAt = &now

	s.addMessage(models.MessageAnswer, answer)

	result := SubmitResult{Score: score}
	if idx < models.TotalQuestions-1 {
		c.CurrentQuestion = idx + 1
	} else {
		c.Progress = models.ProgressCompleted
		c.CompletedAt = &now
		c.Score = c.AverageScore()
		s.active = false
		result.Completed = true
		result.FinalScore = c.Score
		s.addMessage(models.MessageSystem,
			"Congratulations! You have completed the interview. Thank you for your time. Your responses will be reviewed by our team.")
	}
	s.timer = models.TimerState{}

	s.publishLocked()
	return result, nil
}

// Tick advances the countdown by one second. It reports the resulting timer
// state and whether this tick was the one that exhausted the budget; the
// expiry signal fires at most once per question.
func (s *Session) Tick() (models.TimerState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.timer.Active || s.timer.TimeLeft <= 0 {
		return s.timer, false
	}
	s.timer.TimeLeft--
	if s.timer.TimeLeft == 0 && !s.timer.Expired {
		s.timer.Expired = true
		s.timer.Active = false
		s.addMessage(models.MessageSystem, "Time's up! Moving to the next question.")
		return s.timer, true
	}
	return s.timer, false
}

// Pause suspends the countdown and stamps the candidate so a later visit can
// offer to resume.
func (s *Session) Pause() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate != nil {
		now := s.now()
		s.candidate.PausedAt = &now
	}
	s.timer.Active = false
	return s.stateLocked()
}

// Resume lifts a pause. The countdown restarts only when the current question
// still has time on the clock.
func (s *Session) Resume() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.candidate != nil {
		s.candidate.PausedAt = nil
	}
	if s.timer.TimeLeft > 0 && !s.timer.Expired && s.timer.TotalTime > 0 {
		s.timer.Active = true
	}
	return s.stateLocked()
}

// Clear discards the interview in progress but keeps contact details and
// résumé data under a fresh candidate id, ready for a new attempt.
func (s *Session) Clear() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.candidate
	s.candidate = nil
	s.messages = nil
	s.timer = models.TimerState{}
	s.active = false
	s.missing = nil
	s.generating = false
	s.submitting = false

	if prev != nil && (prev.Name != "" || prev.Email != "" || prev.Phone != "" || prev.ResumeData != nil) {
		c := &models.Candidate{
			ID:                uuid.NewString(),
			Name:              prev.Name,
			Email:             prev.Email,
			Phone:             prev.Phone,
			Skills:            prev.Skills,
			Experience:        prev.Experience,
			YearsOfExperience: prev.YearsOfExperience,
			Role:              prev.Role,
			CreatedAt:         s.now(),
			Progress:          models.ProgressNotStarted,
			ResumeData:        prev.ResumeData,
		}
		s.candidate = c
		s.missing = missingContactFields(c)
	}

	return s.stateLocked()
}

// State returns the current session view.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Snapshot captures the session for persistence.
func (s *Session) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c *models.Candidate
	if s.candidate != nil {
		copied := cloneCandidate(*s.candidate)
		c = &copied
	}
	return SessionState{
		Candidate:     c,
		Messages:      append([]models.ChatMessage(nil), s.messages...),
		Timer:         s.timer,
		Active:        s.active,
		MissingFields: append([]string(nil), s.missing...),
	}
}

// Restore reinstates a persisted session, pausing any running countdown so
// the candidate explicitly resumes.
func (s *Session) Restore(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.candidate = state.Candidate
	s.messages = state.Messages
	s.timer = state.Timer
	s.timer.Active = false
	s.active = state.Active
	s.missing = state.MissingFields
	if s.candidate != nil && s.active {
		now := s.now()
		s.candidate.PausedAt = &now
	}
}

// SessionState is the persisted form of a session.
type SessionState struct {
	Candidate     *models.Candidate    `json:"candidate,omitempty"`
	Messages      []models.ChatMessage `json:"messages,omitempty"`
	Timer         models.TimerState    `json:"timer"`
	Active        bool                 `json:"active"`
	MissingFields []string             `json:"missing_fields,omitempty"`
}

func (s *Session) stateLocked() State {
	var c *models.Candidate
	if s.candidate != nil {
		copied := cloneCandidate(*s.candidate)
		c = &copied
	}
	return State{
		Candidate:     c,
		Messages:      append([]models.ChatMessage(nil), s.messages...),
		Timer:         s.timer,
		Active:        s.active,
		MissingFields: append([]string(nil), s.missing...),
		Generating:    s.generating,
		Submitting:    s.submitting,
	}
}

func (s *Session) addMessage(t models.MessageType, content string) {
	s.messages = append(s.messages, models.ChatMessage{
		ID:        uuid.NewString(),
		Type:      t,
		Content:   content,
		Timestamp: s.now(),
	})
}

func (s *Session) publishLocked() {
	if s.OnCandidateUpdate == nil || s.candidate == nil {
		return
	}
	s.OnCandidateUpdate(cloneCandidate(*s.candidate))
}

func cloneCandidate(c models.Candidate) models.Candidate {
	c.Questions = append([]models.InterviewQuestion(nil), c.Questions...)
	c.Skills = append([]string(nil), c.Skills...)
	c.Experience = append([]string(nil), c.Experience...)
	return c
}

func missingContactFields(c *models.Candidate) []string {
	var missing []string
	if strings.TrimSpace(c.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(c.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, "phone")
	}
	return missing
}

var frontendSkills = []string{"React", "Vue", "Angular", "JavaScript", "TypeScript", "HTML", "CSS"}
var backendSkills = []string{"Node.js", "Python", "Java", "Express", "Django", "Spring"}

// deriveRole classifies the candidate from their skill set.
func deriveRole(skills []string) string {
	has := func(group []string) bool {
		for _, s := range skills {
			for _, g := range group {
				if s == g {
					return true
				}
			}
		}
		return false
	}
	frontend, backend := has(frontendSkills), has(backendSkills)
	switch {
	case frontend && backend:
		return "Full Stack Developer"
	case frontend:
		return "Frontend Developer"
	case backend:
		return "Backend Developer"
	default:
		return "Software Developer"
	}
}

func fieldName(field string) string {
	switch field {
	case "email":
		return "email address"
	case "phone":
		return "phone number"
	default:
		return field
	}
}

func joinFieldNames(fields []string) string {
	named := make([]string, len(fields))
	for i, f := range fields {
		named[i] = "your " + fieldName(f)
	}
	return strings.Join(named, ", ")
}

func resumeAnalysisMessage(c *models.Candidate, pf models.ParsedFields, filled, stillMissing []string) string {
	var parts []string
	if len(filled) > 0 {
		named := make([]string, len(filled))
		for i, f := range filled {
			named[i] = fieldName(f)
		}
		parts = append(parts, "your "+strings.Join(named, ", "))
	}
	if len(pf.Skills) > 0 {
		preview := pf.Skills
		suffix := ""
		if len(preview) > 3 {
			preview = preview[:3]
			suffix = ", ..."
		}
		parts = append(parts, fmt.Sprintf("%d technical skills (%s%s)", len(pf.Skills), strings.Join(preview, ", "), suffix))
	}
	if len(pf.Experience) > 0 {
		parts = append(parts, "work experience details")
	}
	if pf.YearsOfExperience > 0 {
		parts = append(parts, fmt.Sprintf("%g years of experience", pf.YearsOfExperience))
	}

	msg := "Great! I analyzed your resume and found: " + strings.Join(parts, ", ") + ". "
	if len(stillMissing) == 0 {
		role := c.Role
		if role == "" {
			role = "Software Developer"
		}
		msg += fmt.Sprintf("Perfect! All required information is complete. I've identified you as a %s. You can now begin your personalized interview!", role)
	} else {
		named := make([]string, len(stillMissing))
		for i, f := range stillMissing {
			named[i] = fieldName(f)
		}
		msg += "Still need: " + strings.Join(named, ", ") + "."
	}
	return msg
}
