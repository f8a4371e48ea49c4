package service

import (
	"nomic_garden/internal/models"
)

// Outcome 是單一提案的投票統計結果
// abstain 與其他未知選項不計入分母
type Outcome struct {
	CountYes      int     `json:"count_yes"`
	CountNo       int     `json:"count_no"`
	Total         int     `json:"total"`
	YesPercentage float64 `json:"yes_percentage"`
	NoPercentage  float64 `json:"no_percentage"`
}

// ComputeOutcome 統計一組投票的結果，純函數，不觸碰儲存層
func ComputeOutcome(votes []models.VoteWithVoter) Outcome {
	var outcome Outcome
	for _, v := range votes {
		switch v.Value {
		case models.VoteYes:
			outcome.CountYes++
		case models.VoteNo:
			outcome.CountNo++
		}
	}
	outcome.Total = outcome.CountYes + outcome.CountNo
	if outcome.Total > 0 {
		outcome.YesPercentage = float64(outcome.CountYes) / float64(outcome.Total) * 100
		outcome.NoPercentage = float64(outcome.CountNo) / float64(outcome.Total) * 100
	}
	return outcome
}
