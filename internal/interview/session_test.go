package interview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crisp-interview/internal/models"
)

type fakeExaminer struct {
	questionFn func(models.QuestionRequest) string
	scoreFn    func(question, answer string, d models.Difficulty) models.Score
	questions  int
}

func (f *fakeExaminer) GenerateQuestion(req models.QuestionRequest) string {
	f.questions++
	if f.questionFn != nil {
		return f.questionFn(req)
	}
	return fmt.Sprintf("Question %d (%s)", f.questions, req.Difficulty)
}

func (f *fakeExaminer) ScoreAnswer(question, answer string, d models.Difficulty) models.Score {
	if f.scoreFn != nil {
		return f.scoreFn(question, answer, d)
	}
	if answer == "" {
		return models.Score{Score: 0, Feedback: "No answer was provided for this question."}
	}
	return models.Score{Score: 60, Feedback: "ok"}
}

func readySession(t *testing.T, ex Examiner) *Session {
	t.Helper()
	s := NewSession(ex)
	s.StartNew("Jane Doe", "jane@example.com", "555-123-4567")
	_, err := s.Begin()
	require.NoError(t, err)
	return s
}

func TestStartNew_MissingFields(t *testing.T) {
	s := NewSession(&fakeExaminer{})

	state := s.StartNew("", "jane@example.com", "")
	assert.Equal(t, []string{"name", "phone"}, state.MissingFields)
	require.Len(t, state.Messages, 1)
	assert.Contains(t, state.Messages[0].Content, "your name, your phone number")
	assert.Equal(t, models.ProgressNotStarted, state.Candidate.Progress)
}

func TestStartNew_PreservesExistingContact(t *testing.T) {
	s := NewSession(&fakeExaminer{})
	s.StartNew("Jane Doe", "jane@example.com", "")

	state := s.StartNew("", "", "555-123-4567")
	assert.Equal(t, "Jane Doe", state.Candidate.Name)
	assert.Equal(t, "jane@example.com", state.Candidate.Email)
	assert.Equal(t, "555-123-4567", state.Candidate.Phone)
	assert.Empty(t, state.MissingFields)
}

func TestUpdateField(t *testing.T) {
	s := NewSession(&fakeExaminer{})
	s.StartNew("", "", "")

	state, err := s.UpdateField("name", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "phone"}, state.MissingFields)

	_, err = s.UpdateField("nickname", "x")
	assert.Error(t, err)

	// Blanking a field puts it back on the missing list.
	state, err = s.UpdateField("name", "")
	require.NoError(t, err)
	assert.Contains(t, state.MissingFields, "name")
}

func TestSetResumeData_FillsOnlyBlankContactFields(t *testing.T) {
	s := NewSession(&fakeExaminer{})
	s.StartNew("Typed Name", "", "")

	state, err := s.SetResumeData(&models.ResumeData{
		Filename: "cv.pdf",
		ParsedFields: models.ParsedFields{
			Name:              "Parsed Name",
			Email:             "parsed@example.com",
			Skills:            []string{"React", "Node.js"},
			YearsOfExperience: 4,
		},
	})
	require.NoError(t, err)

	c := state.Candidate
	assert.Equal(t, "Typed Name", c.Name, "typed value must not be overwritten")
	assert.Equal(t, "parsed@example.com", c.Email)
	assert.Equal(t, []string{"React", "Node.js"}, c.Skills)
	assert.Equal(t, 4.0, c.YearsOfExperience)
	assert.Equal(t, "Full Stack Developer", c.Role)
	assert.Equal(t, []string{"phone"}, state.MissingFields)
}

func TestDeriveRole(t *testing.T) {
	tests := []struct {
		skills []string
		want   string
	}{
		{[]string{"React", "CSS"}, "Frontend Developer"},
		{[]string{"Python", "Django"}, "Backend Developer"},
		{[]string{"React", "Node.js"}, "Full Stack Developer"},
		{[]string{"Rust"}, "Software Developer"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, deriveRole(tt.skills), "skills %v", tt.skills)
	}
}

func TestBegin_RequiresAllFields(t *testing.T) {
	s := NewSession(&fakeExaminer{})
	s.StartNew("Jane Doe", "", "")

	_, err := s.Begin()
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestFullInterviewFlow(t *testing.T) {
	ex := &fakeExaminer{scoreFn: func(_, answer string, _ models.Difficulty) models.Score {
		return models.Score{Score: 70, Feedback: "fine"}
	}}
	s := readySession(t, ex)

	wantPlan := []models.Difficulty{
		models.DifficultyEasy, models.DifficultyEasy,
		models.DifficultyMedium, models.DifficultyMedium,
		models.DifficultyHard, models.DifficultyHard,
	}
	wantBudget := []int{20, 20, 60, 60, 120, 120}

	for i := 0; i < models.TotalQuestions; i++ {
		q, err := s.NextQuestion()
		require.NoError(t, err, "question %d", i+1)
		assert.Equal(t, wantPlan[i], q.Difficulty)
		assert.Equal(t, wantBudget[i], q.TimerSeconds)

		state := s.State()
		assert.True(t, state.Timer.Active)
		assert.Equal(t, wantBudget[i], state.Timer.TimeLeft)

		res, err := s.SubmitAnswer("answer text")
		require.NoError(t, err)
		assert.Equal(t, 70, res.Score.Score)
		assert.Equal(t, i == models.TotalQuestions-1, res.Completed)
	}

	state := s.State()
	assert.Equal(t, models.ProgressCompleted, state.Candidate.Progress)
	assert.Equal(t, 70, state.Candidate.Score)
	assert.NotNil(t, state.Candidate.CompletedAt)
	assert.False(t, state.Active)
}

func TestFinalScoreIsRoundedMean(t *testing.T) {
	scores := []int{80, 75, 60, 55, 90, 40} // mean 66.67 -> 67
	i := 0
	ex := &fakeExaminer{scoreFn: func(_, _ string, _ models.Difficulty) models.Score {
		sc := scores[i]
		i++
		return models.Score{Score: sc}
	}}
	s := readySession(t, ex)

	var last SubmitResult
	for q := 0; q < models.TotalQuestions; q++ {
		_, err := s.NextQuestion()
		require.NoError(t, err)
		var err2 error
		last, err2 = s.SubmitAnswer("a")
		require.NoError(t, err2)
	}
	assert.Equal(t, 67, last.FinalScore)
}

func TestNextQuestion_DiscardsStaleResult(t *testing.T) {
	s := NewSession(nil)
	ex := &fakeExaminer{questionFn: func(models.QuestionRequest) string {
		// The session is reset while generation is in flight.
		s.Clear()
		return "late question"
	}}
	s.examiner = ex
	s.StartNew("Jane Doe", "jane@example.com", "555-123-4567")
	_, err := s.Begin()
	require.NoError(t, err)

	_, err = s.NextQuestion()
	assert.ErrorIs(t, err, ErrStale)

	state := s.State()
	assert.Empty(t, state.Candidate.Questions, "late question must not attach")
}

func TestNextQuestion_ConcurrentCallSameIndex(t *testing.T) {
	s := NewSession(nil)
	var nested bool
	ex := &fakeExaminer{}
	ex.questionFn = func(models.QuestionRequest) string {
		if nested {
			return "fast question"
		}
		nested = true
		// A second request for the same index lands while this generation
		// is still in flight and wins the race.
		q, err := s.NextQuestion()
		require.NoError(t, err)
		assert.Equal(t, "fast question", q.Text)
		return "slow question"
	}
	s.examiner = ex
	s.StartNew("Jane Doe", "jane@example.com", "555-123-4567")
	_, err := s.Begin()
	require.NoError(t, err)

	_, err = s.NextQuestion()
	assert.ErrorIs(t, err, ErrStale)

	state := s.State()
	require.Len(t, state.Candidate.Questions, 1, "only one question per index")
	assert.Equal(t, "fast question", state.Candidate.Questions[0].Text)
	assert.Equal(t, 0, state.Candidate.CurrentQuestion)
	assert.Equal(t, 20, state.Timer.TotalTime, "timer belongs to the issued question")
}

func TestSubmit_DiscardsStaleResult(t *testing.T) {
	s := NewSession(nil)
	ex := &fakeExaminer{scoreFn: func(_, _ string, _ models.Difficulty) models.Score {
		s.Clear()
		return models.Score{Score: 99}
	}}
	s.examiner = ex
	s.StartNew("Jane Doe", "jane@example.com", "555-123-4567")
	_, err := s.Begin()
	require.NoError(t, err)
	_, err = s.NextQuestion()
	require.NoError(t, err)

	_, err = s.SubmitAnswer("answer")
	assert.ErrorIs(t, err, ErrStale)
}

func TestTick_CountdownAndLatchedExpiry(t *testing.T) {
	ex := &fakeExaminer{}
	s := readySession(t, ex)
	_, err := s.NextQuestion()
	require.NoError(t, err)

	for i := 0; i < 19; i++ {
		state, expired := s.Tick()
		assert.False(t, expired)
		assert.Equal(t, 19-i, state.TimeLeft)
	}

	state, expired := s.Tick()
	assert.True(t, expired, "the exhausting tick fires the expiry signal")
	assert.Zero(t, state.TimeLeft)
	assert.False(t, state.Active)

	// Further ticks never re-fire.
	_, expired = s.Tick()
	assert.False(t, expired)

	res, err := s.AutoSubmit()
	require.NoError(t, err)
	assert.Zero(t, res.Score.Score)

	st := s.State()
	q := st.Candidate.Questions[0]
	assert.True(t, q.Answered)
	assert.True(t, q.AutoSubmitted)
	assert.Empty(t, q.Answer)
	assert.Equal(t, 1, st.Candidate.CurrentQuestion)

	// The empty answer still appears in the transcript.
	last := st.Messages[len(st.Messages)-1]
	assert.Equal(t, models.MessageAnswer, last.Type)
	assert.Empty(t, last.Content)
}

func TestSubmitAnswer_AlreadyAnswered(t *testing.T) {
	s := readySession(t, &fakeExaminer{})
	_, err := s.NextQuestion()
	require.NoError(t, err)
	_, err = s.SubmitAnswer("first")
	require.NoError(t, err)

	// After advancing there is no issued question at the new index yet.
	_, err = s.SubmitAnswer("second")
	assert.ErrorIs(t, err, ErrNoQuestion)
}

func TestPauseAndResume(t *testing.T) {
	s := readySession(t, &fakeExaminer{})
	_, err := s.NextQuestion()
	require.NoError(t, err)
	s.Tick()

	state := s.Pause()
	assert.False(t, state.Timer.Active)
	assert.NotNil(t, state.Candidate.PausedAt)
	left := state.Timer.TimeLeft

	state = s.Resume()
	assert.True(t, state.Timer.Active)
	assert.Nil(t, state.Candidate.PausedAt)
	assert.Equal(t, left, state.Timer.TimeLeft, "pause must not consume time")
}

func TestClear_PreservesContactUnderNewID(t *testing.T) {
	s := readySession(t, &fakeExaminer{})
	oldID := s.State().Candidate.ID
	_, err := s.NextQuestion()
	require.NoError(t, err)

	state := s.Clear()
	require.NotNil(t, state.Candidate)
	assert.NotEqual(t, oldID, state.Candidate.ID)
	assert.Equal(t, "Jane Doe", state.Candidate.Name)
	assert.Equal(t, models.ProgressNotStarted, state.Candidate.Progress)
	assert.Empty(t, state.Candidate.Questions)
	assert.Empty(t, state.Messages)
	assert.False(t, state.Active)
}

func TestSnapshotRestore(t *testing.T) {
	s := readySession(t, &fakeExaminer{})
	_, err := s.NextQuestion()
	require.NoError(t, err)
	s.Tick()

	snap := s.Snapshot()

	restored := NewSession(&fakeExaminer{})
	restored.Restore(snap)

	state := restored.State()
	require.NotNil(t, state.Candidate)
	assert.Equal(t, snap.Candidate.ID, state.Candidate.ID)
	assert.Len(t, state.Candidate.Questions, 1)
	assert.False(t, state.Timer.Active, "restored countdown waits for an explicit resume")
	assert.Equal(t, 19, state.Timer.TimeLeft)
	assert.NotNil(t, state.Candidate.PausedAt)
}

func TestOnCandidateUpdate(t *testing.T) {
	var updates []models.Candidate
	s := NewSession(&fakeExaminer{})
	s.OnCandidateUpdate = func(c models.Candidate) { updates = append(updates, c) }
	s.StartNew("Jane Doe", "jane@example.com", "555-123-4567")
	_, err := s.Begin()
	require.NoError(t, err)
	_, err = s.NextQuestion()
	require.NoError(t, err)
	_, err = s.SubmitAnswer("a")
	require.NoError(t, err)

	require.Len(t, updates, 2)
	assert.Equal(t, models.ProgressInProgress, updates[0].Progress)
	assert.Len(t, updates[1].Questions, 1)
	assert.True(t, updates[1].Questions[0].Answered)
}
