package module

import (
	"riskscan/internal/core/risk"
	"riskscan/internal/platform/config"
	perr "riskscan/internal/platform/errors"
	"riskscan/internal/platform/validate"
)

// Options holds configuration settings for the analyze module
type Options struct {
	CatalogPath string `json:"catalog_path"`
	KeysDir     string `json:"keys_dir"`
	WindowDays  int    `json:"window_days" validate:"min=0,max=36500"`
	Workers     int    `json:"workers" validate:"min=0,max=256"`
	Limit       int    `json:"limit" validate:"min=0"`
	IncludeRaw  bool   `json:"include_raw"`

	// Risk overrides the CORE_RISK_* thresholds when set
	Risk *risk.Thresholds `json:"-" validate:"-"`
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("CORE_ANALYZE_")
	th := ThresholdsFromConfig(cfg)
	return Options{
		CatalogPath: af.MayPath("CATALOG_PATH", ""),
		KeysDir:     af.MayPath("KEYS_DIR", ""),
		WindowDays:  af.MayInt("WINDOW_DAYS", 365),
		Workers:     af.MayInt("WORKERS", 2),
		Limit:       af.MayInt("LIMIT", 0),
		IncludeRaw:  af.MayBool("INCLUDE_RAW", false),
		Risk:        &th,
	}
}

// ThresholdsFromConfig reads CORE_RISK_* on top of the stock calibration
func ThresholdsFromConfig(cfg config.Conf) risk.Thresholds {
	rf := cfg.Prefix("CORE_RISK_")
	d := risk.DefaultThresholds()
	return risk.Thresholds{
		CriticalWeight:   rf.MayInt("CRITICAL_WEIGHT", d.CriticalWeight),
		HighWeight:       rf.MayInt("HIGH_WEIGHT", d.HighWeight),
		MinScore:         rf.MayInt("MIN_SCORE", d.MinScore),
		MinWords:         rf.MayInt("MIN_WORDS", d.MinWords),
		MaxWords:         rf.MayInt("MAX_WORDS", d.MaxWords),
		MinFingerprint:   rf.MayInt("MIN_FINGERPRINT", d.MinFingerprint),
		DigitRunLen:      rf.MayInt("DIGIT_RUN_LEN", d.DigitRunLen),
		MaxDigitRuns:     rf.MayInt("MAX_DIGIT_RUNS", d.MaxDigitRuns),
		DigitRatio:       rf.MayFloat64("DIGIT_RATIO", d.DigitRatio),
		DigitRatioMinLen: rf.MayInt("DIGIT_RATIO_MIN_LEN", d.DigitRatioMinLen),
		DisplayLimit:     rf.MayInt("DISPLAY_LIMIT", d.DisplayLimit),
		TopN:             rf.MayInt("TOP_N", d.TopN),
	}
}

// merge lays non-zero overrides over the configured options
func merge(cfg, overrides Options) Options {
	if overrides.CatalogPath != "" {
		cfg.CatalogPath = overrides.CatalogPath
	}
	if overrides.KeysDir != "" {
		cfg.KeysDir = overrides.KeysDir
	}
	if overrides.WindowDays != 0 {
		cfg.WindowDays = overrides.WindowDays
	}
	if overrides.Workers != 0 {
		cfg.Workers = overrides.Workers
	}
	if overrides.Limit != 0 {
		cfg.Limit = overrides.Limit
	}
	// bool override only switches on
	if overrides.IncludeRaw {
		cfg.IncludeRaw = true
	}
	if overrides.Risk != nil {
		cfg.Risk = overrides.Risk
	}
	return cfg
}

// Validate checks option ranges and the thresholds
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return perr.WithOp(perr.Wrap(err, perr.ErrorCodeConfigInvalid, "analyze options"), "analyze.Options")
	}
	if o.Risk != nil {
		return o.Risk.Validate()
	}
	return nil
}
