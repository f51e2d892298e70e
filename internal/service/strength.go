package service

import (
	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// StrengthEstimate is what the external estimator reports. It is treated as
// a black box: the vault only maps its score to a band.
type StrengthEstimate struct {
	Score            int // 0..4
	Suggestions      []string
	CrackTimeDisplay string
}

type StrengthEstimator interface {
	Estimate(password string) StrengthEstimate
}

// StrengthResult is the caller-facing verdict. Feedback is never empty.
type StrengthResult struct {
	Score            int      `json:"score"`
	Strength         string   `json:"strength"` // Weak / Medium / Strong
	Feedback         []string `json:"feedback"`
	CrackTimeDisplay string   `json:"crackTimesDisplay,omitempty"`
}

// ZxcvbnEstimator delegates to the zxcvbn port. The port exposes no feedback
// strings, so Suggestions stays empty here and bandStrength always supplies
// the defaults; Suggestions is kept on the estimate for estimators that do
// produce advice.
type ZxcvbnEstimator struct{}

func (ZxcvbnEstimator) Estimate(password string) StrengthEstimate {
	r := zxcvbn.PasswordStrength(password, nil)
	return StrengthEstimate{
		Score:            r.Score,
		CrackTimeDisplay: r.CrackTimeDisplay,
	}
}

// bandStrength maps an estimator score to a label and fills in a default
// suggestion when the estimator had none.
func bandStrength(est StrengthEstimate) StrengthResult {
	strength := "Weak"
	feedback := est.Suggestions

	switch {
	case est.Score == 3:
		strength = "Medium"
		if len(feedback) == 0 {
			feedback = append(feedback, "Consider adding symbols.")
		}
	case est.Score >= 4:
		strength = "Strong"
		if len(feedback) == 0 {
			feedback = append(feedback, "Strong password!")
		}
	default:
		if len(feedback) == 0 {
			feedback = append(feedback, "Use uppercase, lowercase, numbers, symbols.")
		}
	}

	return StrengthResult{
		Score:            est.Score,
		Strength:         strength,
		Feedback:         feedback,
		CrackTimeDisplay: est.CrackTimeDisplay,
	}
}
