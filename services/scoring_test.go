package services

import (
	"testing"

	"applicant-tracking-api/models"
)

func fullRubric(score int) []RubricScore {
	topics := []struct {
		topic    string
		category string
	}{
		{"Technical knowledge", models.ScoreCategoryCompetency},
		{"Problem solving", models.ScoreCategoryCompetency},
		{"Communication", models.ScoreCategoryCompetency},
		{"Relevant experience", models.ScoreCategoryCompetency},
		{"Learning attitude", models.ScoreCategoryCompetency},
		{"Teamwork", models.ScoreCategoryCompetency},
		{"Leadership potential", models.ScoreCategoryCompetency},
		{"Integrity", models.ScoreCategoryCoreValue},
		{"Customer focus", models.ScoreCategoryCoreValue},
		{"Ownership", models.ScoreCategoryCoreValue},
		{"Adaptability", models.ScoreCategoryCoreValue},
		{"Collaboration", models.ScoreCategoryCoreValue},
		{"Initiative", models.ScoreCategoryCoreValue},
		{"Quality mindset", models.ScoreCategoryCoreValue},
		{"Respect", models.ScoreCategoryCoreValue},
	}
	scores := make([]RubricScore, 0, len(topics))
	for _, tp := range topics {
		scores = append(scores, RubricScore{Topic: tp.topic, Category: tp.category, Score: score})
	}
	return scores
}

func TestComputeScoreFullRubric(t *testing.T) {
	scores := fullRubric(3)

	total, max, pct := ComputeScore(scores)
	if total != 45 {
		t.Errorf("total = %d, want 45", total)
	}
	if max != 75 {
		t.Errorf("max = %d, want 75", max)
	}
	if pct != 60 {
		t.Errorf("percentage = %d, want 60", pct)
	}
}

func TestComputeScoreRoundsPercentage(t *testing.T) {
	scores := []RubricScore{
		{Topic: "A", Category: models.ScoreCategoryCompetency, Score: 4},
		{Topic: "B", Category: models.ScoreCategoryCompetency, Score: 4},
		{Topic: "C", Category: models.ScoreCategoryCoreValue, Score: 5},
	}

	total, max, pct := ComputeScore(scores)
	if total != 13 || max != 15 {
		t.Fatalf("total/max = %d/%d, want 13/15", total, max)
	}
	// 13/15 = 86.67, rounds to 87
	if pct != 87 {
		t.Errorf("percentage = %d, want 87", pct)
	}
}

func TestValidateRubricRejectsOutOfRangeScore(t *testing.T) {
	scores := fullRubric(3)
	scores[4].Score = 0

	if err := ValidateRubric(scores); err == nil {
		t.Fatal("expected error for unscored topic, got nil")
	}

	scores[4].Score = 6
	if err := ValidateRubric(scores); err == nil {
		t.Fatal("expected error for score above 5, got nil")
	}
}

func TestValidateRubricRejectsEmptySubmission(t *testing.T) {
	if err := ValidateRubric(nil); err == nil {
		t.Fatal("expected error for empty rubric, got nil")
	}
	if err := ValidateRubric([]RubricScore{{Topic: "", Score: 3}}); err == nil {
		t.Fatal("expected error for missing topic, got nil")
	}
}
