package llm

import (
	"encoding/json"
	"log"
	"strings"
	"time"

	"crisp-interview/internal/models"
)

// Generator is the text-generation transport the gateway drives. Satisfied by
// *Service; tests substitute their own.
type Generator interface {
	Generate(prompt string) (string, error)
}

// Gateway turns raw text generation into interview operations. Every method
// degrades to an offline fallback instead of failing, so a dead provider
// never blocks an interview in progress.
type Gateway struct {
	gen     Generator
	retries int
	backoff time.Duration
}

func NewGateway(gen Generator) *Gateway {
	return &Gateway{
		gen:     gen,
		retries: 2,
		backoff: time.Second,
	}
}

// GenerateQuestion produces the next question for the request. On provider
// failure it serves an offline-bank question marked with an offline prefix.
func (g *Gateway) GenerateQuestion(req models.QuestionRequest) string {
	text, err := g.gen.Generate(buildQuestionPrompt(req))
	if err != nil {
		log.Printf("[LLM] question generation failed, using offline bank: %v", err)
		var skills []string
		if req.Profile != nil {
			skills = req.Profile.Skills
		}
		return "[Offline Mode] " + fallbackQuestion(req.Difficulty, skills)
	}
	return strings.TrimSpace(text)
}

// ScoreAnswer evaluates an answer, retrying transient provider failures
// before handing off to the deterministic heuristic scorer. Empty answers
// never reach the provider.
func (g *Gateway) ScoreAnswer(question, answer string, difficulty models.Difficulty) models.Score {
	if strings.TrimSpace(answer) == "" {
		return fallbackScore(answer)
	}

	prompt := buildScorePrompt(question, answer, difficulty)

	var lastErr error
	for attempt := 0; attempt <= g.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(g.backoff)
		}

		text, err := g.gen.Generate(prompt)
		if err != nil {
			lastErr = err
			log.Printf("[LLM] scoring attempt %d failed: %v", attempt+1, err)
			continue
		}

		raw, ok := extractJSON(text)
		if !ok {
			lastErr = errInvalidFormat
			log.Printf("[LLM] scoring attempt %d returned no JSON", attempt+1)
			continue
		}

		var parsed models.Score
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			lastErr = err
			log.Printf("[LLM] scoring attempt %d returned malformed JSON: %v", attempt+1, err)
			continue
		}

		parsed.Score = clamp(parsed.Score)
		if parsed.Feedback == "" {
			parsed.Feedback = "Unable to provide feedback at this time."
		}
		return parsed
	}

	log.Printf("[LLM] scoring unavailable, using offline heuristic: %v", lastErr)
	return fallbackScore(answer)
}

// GenerateSummary produces the roster summary for a finished interview,
// falling back to a score-derived summary when the provider fails.
func (g *Gateway) GenerateSummary(c *models.Candidate) models.Summary {
	text, err := g.gen.Generate(buildSummaryPrompt(c))
	if err != nil {
		log.Printf("[LLM] summary generation failed, using offline summary: %v", err)
		return fallbackSummary(c)
	}

	raw, ok := extractJSON(text)
	if !ok {
		log.Printf("[LLM] summary response carried no JSON, using offline summary")
		return fallbackSummary(c)
	}

	var parsed models.Summary
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("[LLM] summary response malformed, using offline summary: %v", err)
		return fallbackSummary(c)
	}

	if parsed.Summary == "" {
		parsed.Summary = "Interview completed successfully."
	}
	if parsed.OverallScore == 0 {
		parsed.OverallScore = c.AverageScore()
	}
	parsed.OverallScore = clamp(parsed.OverallScore)
	if len(parsed.Strengths) == 0 {
		parsed.Strengths = []string{"Completed the interview", "Showed engagement"}
	}
	if len(parsed.Improvements) == 0 {
		parsed.Improvements = []string{"Continue practicing", "Expand technical knowledge"}
	}
	return parsed
}

var errInvalidFormat = invalidFormatError{}

type invalidFormatError struct{}

func (invalidFormatError) Error() string { return "invalid response format" }

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
