package models

import "time"

// Difficulty is one of the three question bands. The band fixes both the
// prompt framing and the answer time budget.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Progress is the lifecycle status of a candidate's interview.
type Progress string

const (
	ProgressNotStarted Progress = "not_started"
	ProgressInProgress Progress = "in_progress"
	ProgressCompleted  Progress = "completed"
)

// TotalQuestions is the fixed length of every interview.
const TotalQuestions = 6

// DifficultyPlan is the fixed difficulty for each question index.
var DifficultyPlan = [TotalQuestions]Difficulty{
	DifficultyEasy, DifficultyEasy,
	DifficultyMedium, DifficultyMedium,
	DifficultyHard, DifficultyHard,
}

// TimerBudget returns the answer budget in seconds for a difficulty band.
func TimerBudget(d Difficulty) int {
	switch d {
	case DifficultyEasy:
		return 20
	case DifficultyMedium:
		return 60
	default:
		return 120
	}
}

// Candidate is one interview subject's full session record.
type Candidate struct {
	ID                string              `json:"id"`
	Name              string              `json:"name,omitempty"`
	Email             string              `json:"email,omitempty"`
	Phone             string              `json:"phone,omitempty"`
	Skills            []string            `json:"skills,omitempty"`
	Experience        []string            `json:"experience,omitempty"`
	YearsOfExperience float64             `json:"years_of_experience,omitempty"`
	Role              string              `json:"role,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	Progress          Progress            `json:"progress"`
	Score             int                 `json:"score,omitempty"`
	Summary           *Summary            `json:"summary,omitempty"`
	Questions         []InterviewQuestion `json:"questions"`
	CurrentQuestion   int                 `json:"current_question_index"`
	StartedAt         *time.Time          `json:"started_at,omitempty"`
	CompletedAt       *time.Time          `json:"completed_at,omitempty"`
	PausedAt          *time.Time          `json:"paused_at,omitempty"`
	ResumeData        *ResumeData         `json:"resume_data,omitempty"`
}

// InterviewQuestion is a single generated question with its answer and score.
// Text, difficulty and budget are fixed at creation; answer, score and
// feedback are set at most once.
type InterviewQuestion struct {
	ID            string     `json:"id"`
	Text          string     `json:"text"`
	Difficulty    Difficulty `json:"difficulty"`
	TimerSeconds  int        `json:"timer_seconds"`
	Answer        string     `json:"answer,omitempty"`
	Answered      bool       `json:"answered"`
	AutoSubmitted bool       `json:"auto_submitted,omitempty"`
	Score         int        `json:"score"`
	Feedback      string     `json:"feedback,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	AnsweredAt    *time.Time `json:"answered_at,omitempty"`
}

// ResumeData is the raw and parsed result of a résumé upload.
type ResumeData struct {
	Filename     string       `json:"filename"`
	Text         string       `json:"text"`
	ParsedFields ParsedFields `json:"parsed_fields"`
}

// ParsedFields is a best-effort bag of fields extracted from résumé text.
// Every field may be absent.
type ParsedFields struct {
	Name              string   `json:"name,omitempty"`
	Email             string   `json:"email,omitempty"`
	Phone             string   `json:"phone,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	Experience        []string `json:"experience,omitempty"`
	Education         []string `json:"education,omitempty"`
	Summary           string   `json:"summary,omitempty"`
	YearsOfExperience float64  `json:"years_of_experience,omitempty"`
	Technologies      []string `json:"technologies,omitempty"`
	Projects          []string `json:"projects,omitempty"`
}

// MessageType classifies a chat transcript entry.
type MessageType string

const (
	MessageSystem   MessageType = "system"
	MessageUser     MessageType = "user"
	MessageQuestion MessageType = "question"
	MessageAnswer   MessageType = "answer"
)

// ChatMessage is one entry in the append-only interview transcript.
type ChatMessage struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// TimerState is the countdown bound to the active question.
type TimerState struct {
	Active            bool       `json:"active"`
	TimeLeft          int        `json:"time_left"`
	TotalTime         int        `json:"total_time"`
	QuestionStartedAt *time.Time `json:"question_started_at,omitempty"`
	// Expired latches once TimeLeft reaches zero so the time-up transition
	// fires exactly once per question.
	Expired bool `json:"expired,omitempty"`
}

// Score is the AI (or fallback) evaluation of a single answer.
type Score struct {
	Score     int    `json:"score"`
	Feedback  string `json:"feedback"`
	Reasoning string `json:"reasoning,omitempty"`
}

// Summary is the AI (or fallback) evaluation of a whole interview.
type Summary struct {
	Summary      string   `json:"summary"`
	OverallScore int      `json:"overallScore"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}

// Profile is the candidate context used to bias question generation.
type Profile struct {
	Skills            []string `json:"skills,omitempty"`
	Experience        []string `json:"experience,omitempty"`
	YearsOfExperience float64  `json:"years_of_experience,omitempty"`
	Role              string   `json:"role,omitempty"`
}

// QuestionRequest is the input to question generation.
type QuestionRequest struct {
	Difficulty        Difficulty `json:"difficulty"`
	Role              string     `json:"role"`
	PreviousQuestions []string   `json:"previous_questions,omitempty"`
	Profile           *Profile   `json:"profile,omitempty"`
}

// AnsweredQuestions returns the questions that have a recorded answer.
func (c *Candidate) AnsweredQuestions() []InterviewQuestion {
	out := make([]InterviewQuestion, 0, len(c.Questions))
	for _, q := range c.Questions {
		if q.Answered {
			out = append(out, q)
		}
	}
	return out
}

// AverageScore returns the rounded mean of recorded per-question scores,
// or 0 when nothing has been answered.
func (c *Candidate) AverageScore() int {
	answered := c.AnsweredQuestions()
	if len(answered) == 0 {
		return 0
	}
	sum := 0
	for _, q := range answered {
		sum += q.Score
	}
	return int(float64(sum)/float64(len(answered)) + 0.5)
}

// CandidateProfile assembles the question-generation profile from candidate
// fields, falling back to résumé parsed fields where direct fields are empty.
func (c *Candidate) CandidateProfile() *Profile {
	p := &Profile{
		Skills:            c.Skills,
		Experience:        c.Experience,
		YearsOfExperience: c.YearsOfExperience,
		Role:              c.Role,
	}
	if c.ResumeData != nil {
		if len(p.Skills) == 0 {
			p.Skills = c.ResumeData.ParsedFields.Skills
		}
		if len(p.Experience) == 0 {
			p.Experience = c.ResumeData.ParsedFields.Experience
		}
		if p.YearsOfExperience == 0 {
			p.YearsOfExperience = c.ResumeData.ParsedFields.YearsOfExperience
		}
	}
	if p.Role == "" {
		p.Role = "Full Stack Developer"
	}
	return p
}
