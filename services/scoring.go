package services

import (
	"fmt"
	"math"
)

// RubricScore is one scored rubric topic as submitted by the interviewer.
type RubricScore struct {
	Topic    string `json:"topic" binding:"required"`
	Category string `json:"category" binding:"required"` // competency|core_value
	Score    int    `json:"score"`
}

// MaxScorePerTopic is the rubric ceiling: every topic is rated 1-5.
const MaxScorePerTopic = 5

// ValidateRubric rejects partial submissions: every topic must carry a score
// in the 1-5 range.
func ValidateRubric(scores []RubricScore) error {
	if len(scores) == 0 {
		return fmt.Errorf("at least one rubric score is required")
	}
	for _, s := range scores {
		if s.Topic == "" {
			return fmt.Errorf("rubric topic is required")
		}
		if s.Score < 1 || s.Score > MaxScorePerTopic {
			return fmt.Errorf("topic '%s' must be scored between 1 and %d", s.Topic, MaxScorePerTopic)
		}
	}
	return nil
}

// ComputeScore returns total, max and rounded percentage for a full rubric.
func ComputeScore(scores []RubricScore) (total, max, percentage int) {
	for _, s := range scores {
		total += s.Score
	}
	max = len(scores) * MaxScorePerTopic
	if max > 0 {
		percentage = int(math.Round(float64(total) / float64(max) * 100))
	}
	return total, max, percentage
}
