package llm

import (
	"fmt"
	"strings"
	"time"

	"crisp-interview/internal/models"
)

// timingGuide describes what each difficulty's time budget allows for, so the
// model sizes questions to the countdown.
var timingGuide = map[models.Difficulty]string{
	models.DifficultyEasy:   "20 seconds - Basic concepts, definitions, or simple comparisons",
	models.DifficultyMedium: "60 seconds - Practical scenarios, problem-solving, or explanations with examples",
	models.DifficultyHard:   "120 seconds - Complex system design, detailed analysis, or multi-part problems",
}

func buildQuestionPrompt(req models.QuestionRequest) string {
	profileInfo := ""
	if req.Profile != nil {
		role := req.Profile.Role
		if role == "" {
			role = req.Role
		}
		profileInfo = fmt.Sprintf(`

CANDIDATE PROFILE:
- Role: %s
- Skills: %s
- Years of Experience: %s
- Experience: %s

INSTRUCTIONS:
- Tailor the question to their specific skills and experience level
- If they have React experience, ask React-specific questions
- If they're experienced (3+ years), make questions more advanced
- If they're junior (0-2 years), focus on fundamentals
- Use their actual skills to create relevant scenarios`,
			role,
			orNotSpecified(strings.Join(req.Profile.Skills, ", ")),
			orNotSpecified(formatYears(req.Profile.YearsOfExperience)),
			orNotSpecified(strings.Join(firstN(req.Profile.Experience, 2), "; ")))
	}

	previous := "none"
	if len(req.PreviousQuestions) > 0 {
		previous = strings.Join(req.PreviousQuestions, ", ")
	}

	return fmt.Sprintf(`Generate a single technical interview question for a %s position.

Difficulty: %s (%s)
%s

REQUIREMENTS:
- Make it engaging and directly relevant to their background
- Test practical knowledge and real-world application
- Avoid questions similar to: %s
- Return ONLY the question text, no additional formatting or explanations
- Ensure the question can be reasonably answered in the time limit

EXAMPLES BY DIFFICULTY:
Easy: "What's the difference between var, let, and const in JavaScript?"
Medium: "How would you handle state management in a React application with multiple components sharing data?"
Hard: "Design a scalable system architecture for a real-time chat application that supports 100,000+ concurrent users."`,
		req.Role,
		strings.ToUpper(string(req.Difficulty)),
		timingGuide[req.Difficulty],
		profileInfo,
		previous)
}

func buildScorePrompt(question, answer string, difficulty models.Difficulty) string {
	return fmt.Sprintf(`You are an expert technical interviewer. Evaluate this candidate's answer:

Question: %q
Answer: %q
Difficulty Level: %s

Provide a fair and constructive evaluation. Consider:
- Technical accuracy and understanding
- Completeness of the answer
- Communication clarity
- Problem-solving approach
- Creativity and insight

Be encouraging but honest. If the answer is brief or incomplete, acknowledge effort while noting areas for improvement.

Respond in this exact JSON format:
{
  "score": [number 0-100],
  "feedback": "[2-3 sentences of constructive feedback]",
  "reasoning": "[brief explanation of scoring rationale]"
}`, question, answer, difficulty)
}

func buildSummaryPrompt(c *models.Candidate) string {
	answered := c.AnsweredQuestions()
	avg := 0.0
	if len(answered) > 0 {
		sum := 0
		for _, q := range answered {
			sum += q.Score
		}
		avg = float64(sum) / float64(len(answered))
	}

	var qa []string
	for _, q := range answered {
		feedback := q.Feedback
		if feedback == "" {
			feedback = "N/A"
		}
		qa = append(qa, fmt.Sprintf("Q: %s\nA: %s\nScore: %d/100\nFeedback: %s", q.Text, q.Answer, q.Score, feedback))
	}

	name := c.Name
	if name == "" {
		name = "Anonymous"
	}
	role := c.Role
	if role == "" {
		role = "Software Developer"
	}

	profile := fmt.Sprintf(`CANDIDATE PROFILE:
- Name: %s
- Role: %s
- Skills: %s
- Years of Experience: %s
- Resume Experience: %s`,
		name,
		role,
		orNotSpecified(strings.Join(c.Skills, ", ")),
		orNotSpecified(formatYears(c.YearsOfExperience)),
		orNotSpecified(strings.Join(firstN(c.Experience, 2), "; ")))

	started := "N/A"
	if c.StartedAt != nil {
		started = c.StartedAt.Format(time.RFC1123)
	}
	duration := "N/A"
	if c.StartedAt != nil && c.CompletedAt != nil {
		duration = fmt.Sprintf("%d minutes", int(c.CompletedAt.Sub(*c.StartedAt).Round(time.Minute).Minutes()))
	}

	return fmt.Sprintf(`Generate a comprehensive interview summary for this candidate:

%s

INTERVIEW PERFORMANCE:
%s

STATISTICS:
- Questions Answered: %d/%d
- Average Score: %.1f/100
- Started: %s
- Status: %s
- Interview Duration: %s

INSTRUCTIONS:
- Consider their background and experience level when evaluating performance
- Provide specific, actionable feedback
- Be professional but encouraging
- Consider if questions matched their skill level appropriately

Respond in this exact JSON format:
{
  "summary": "[3-4 sentences summarizing overall performance, considering their background and experience level]",
  "overallScore": [number 0-100 - be fair but consider experience level],
  "strengths": ["specific strength 1", "specific strength 2", "specific strength 3"],
  "improvements": ["specific improvement area 1", "specific improvement area 2", "specific improvement area 3"]
}`,
		profile,
		strings.Join(qa, "\n\n"),
		len(answered), models.TotalQuestions,
		avg,
		started,
		c.Progress,
		duration)
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not specified"
	}
	return s
}

func formatYears(years float64) string {
	if years <= 0 {
		return ""
	}
	return fmt.Sprintf("%g", years)
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
