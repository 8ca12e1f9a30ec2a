package llm

import (
	"fmt"
	"math/rand"
	"strings"

	"crisp-interview/internal/models"
)

// Offline fallbacks keep an interview moving when the provider is down or
// unconfigured. Question selection is random within a bank; scoring is a
// deterministic heuristic so the same answer always gets the same score.

var fallbackQuestions = map[models.Difficulty][]string{
	models.DifficultyEasy: {
		"What is the difference between let, const, and var in JavaScript?",
		"Explain what React components are and why they're useful.",
		"What is the purpose of CSS and how does it work with HTML?",
	},
	models.DifficultyMedium: {
		"Describe the concept of state management in React. When would you use useState vs useReducer?",
		"Explain the difference between SQL and NoSQL databases. When would you choose one over the other?",
		"What are some common security vulnerabilities in web applications and how would you prevent them?",
	},
	models.DifficultyHard: {
		"Design a system to handle real-time notifications for a social media platform with millions of users.",
		"Explain how you would optimize a React application that's experiencing performance issues.",
		"Describe how you would implement authentication and authorization in a microservices architecture.",
	},
}

// fallbackQuestion picks an offline question, steering toward the candidate's
// stack when their skills mention React, Node or Python.
func fallbackQuestion(difficulty models.Difficulty, skills []string) string {
	hasReact, hasNode, hasPython := false, false, false
	for _, s := range skills {
		lower := strings.ToLower(s)
		switch {
		case strings.Contains(lower, "react"):
			hasReact = true
		case strings.Contains(lower, "node"):
			hasNode = true
		case strings.Contains(lower, "python"):
			hasPython = true
		}
	}

	if len(skills) > 0 {
		var bank []string
		switch difficulty {
		case models.DifficultyEasy:
			bank = []string{
				pick(hasReact, "What are React hooks and why were they introduced?", "What is the difference between let, const, and var in JavaScript?"),
				pick(hasNode, "What is the event loop in Node.js?", "Explain what a REST API is."),
				pick(hasPython, "What's the difference between a list and a tuple in Python?", "What is the purpose of CSS?"),
			}
		case models.DifficultyMedium:
			bank = []string{
				pick(hasReact, "How would you optimize a React component that re-renders frequently?", "Describe how you would implement state management in a web application."),
				pick(hasNode, "How would you handle file uploads in a Node.js application?", "Explain the difference between SQL and NoSQL databases."),
				pick(hasPython, "How would you implement a REST API using Flask or Django?", "What are some common security vulnerabilities in web applications?"),
			}
		default:
			bank = []string{
				pick(hasReact, "Design a React application architecture for a large-scale e-commerce platform with complex state management needs.", "Design a system to handle real-time notifications for millions of users."),
				pick(hasNode, "How would you design a scalable Node.js microservices architecture for a social media platform?", "Explain how you would implement authentication in a distributed system."),
				pick(hasPython, "Design a machine learning pipeline for real-time fraud detection using Python.", "Describe how you would optimize a slow-performing database query."),
			}
		}
		return bank[rand.Intn(len(bank))]
	}

	bank := fallbackQuestions[difficulty]
	if bank == nil {
		bank = fallbackQuestions[models.DifficultyMedium]
	}
	return bank[rand.Intn(len(bank))]
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}

var reasoningWords = []string{"because", "since", "therefore", "however", "example"}

// fallbackScore is the offline heuristic scorer: a base score adjusted for
// answer length, visible reasoning and sentence structure, clamped to 0-100.
func fallbackScore(answer string) models.Score {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		return models.Score{
			Score:    0,
			Feedback: "No answer was provided for this question.",
		}
	}

	wordCount := len(strings.Fields(trimmed))
	lower := strings.ToLower(answer)
	hasKeywords := false
	for _, w := range reasoningWords {
		if strings.Contains(lower, w) {
			hasKeywords = true
			break
		}
	}

	score := 40

	if wordCount >= 10 {
		score += 10
	}
	if wordCount >= 25 {
		score += 15
	}
	if wordCount >= 50 {
		score += 15
	}
	if wordCount >= 100 {
		score += 10
	}

	if hasKeywords {
		score += 10
	}
	if strings.Contains(answer, "?") {
		score += 5
	}
	if len(strings.Split(answer, ".")) > 2 {
		score += 5
	}

	if wordCount < 5 {
		score -= 20
		if score < 10 {
			score = 10
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return models.Score{
		Score:    score,
		Feedback: fallbackFeedback(wordCount, hasKeywords, score),
	}
}

func fallbackFeedback(wordCount int, hasKeywords bool, score int) string {
	var feedback string
	switch {
	case score >= 80:
		feedback = "Excellent response! You provided a comprehensive answer with good reasoning."
	case score >= 60:
		feedback = "Good response. You demonstrated understanding and provided relevant details."
	case score >= 40:
		feedback = "Fair response. Consider adding more detail and explanation to strengthen your answer."
	default:
		feedback = "Your response could be improved. Try to provide more comprehensive explanations with examples."
	}

	if wordCount < 15 {
		feedback += " Consider expanding your answer with more details."
	}
	if !hasKeywords {
		feedback += ` Try to explain your reasoning using words like "because" or "since".`
	}

	return feedback + " (Note: AI scoring is temporarily unavailable - this is an automated assessment.)"
}

// fallbackSummary derives a summary purely from recorded scores.
func fallbackSummary(c *models.Candidate) models.Summary {
	answered := c.AnsweredQuestions()
	avg := 50.0
	if len(answered) > 0 {
		sum := 0
		for _, q := range answered {
			sum += q.Score
		}
		avg = float64(sum) / float64(len(answered))
	}

	return models.Summary{
		Summary: fmt.Sprintf(
			"Candidate completed %d out of %d questions with an average score of %.1f. Shows engagement and effort in the interview process.",
			len(answered), models.TotalQuestions, avg),
		OverallScore: int(avg + 0.5),
		Strengths:    []string{"Completed the interview", "Demonstrated engagement", "Provided thoughtful responses"},
		Improvements: []string{"Expand technical knowledge", "Practice explaining concepts", "Work on communication skills"},
	}
}
