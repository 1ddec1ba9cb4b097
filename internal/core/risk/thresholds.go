package risk

import (
	perr "riskscan/internal/platform/errors"
	"riskscan/internal/platform/validate"
)

// Thresholds are the calibration knobs of the extractor
type Thresholds struct {
	CriticalWeight   int     `json:"critical_weight" validate:"min=0"`
	HighWeight       int     `json:"high_weight" validate:"min=0"`
	MinScore         int     `json:"min_score" validate:"min=0"`
	MinWords         int     `json:"min_words" validate:"min=1"`
	MaxWords         int     `json:"max_words" validate:"gtefield=MinWords"`
	MinFingerprint   int     `json:"min_fingerprint" validate:"min=0"`
	DigitRunLen      int     `json:"digit_run_len" validate:"min=1"`
	MaxDigitRuns     int     `json:"max_digit_runs" validate:"min=1"`
	DigitRatio       float64 `json:"digit_ratio" validate:"gte=0,lte=1"`
	DigitRatioMinLen int     `json:"digit_ratio_min_len" validate:"min=0"`
	DisplayLimit     int     `json:"display_limit" validate:"min=16"`
	TopN             int     `json:"top_n" validate:"min=1"`
}

// DefaultThresholds returns the stock calibration
func DefaultThresholds() Thresholds {
	return Thresholds{
		CriticalWeight:   15,
		HighWeight:       10,
		MinScore:         10,
		MinWords:         6,
		MaxWords:         60,
		MinFingerprint:   35,
		DigitRunLen:      5,
		MaxDigitRuns:     2,
		DigitRatio:       0.15,
		DigitRatioMinLen: 20,
		DisplayLimit:     280,
		TopN:             10,
	}
}

// Validate checks the thresholds are usable
func (t Thresholds) Validate() error {
	if err := validate.Struct(t); err != nil {
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeConfigInvalid, "risk thresholds"), "risk.Thresholds")
	}
	return nil
}
