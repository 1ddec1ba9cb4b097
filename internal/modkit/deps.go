package modkit

import (
	"riskscan/internal/platform/config"
	"riskscan/internal/platform/logger"
	"riskscan/internal/platform/metrics"
)

// Deps are the process-wide collaborators handed to every module.
// All fields may be zero in tests
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Metrics metrics.Recorder
}

// Recorder returns the wired recorder, or a no-op
func (d Deps) Recorder() metrics.Recorder {
	if d.Metrics == nil {
		return metrics.Nop{}
	}
	return d.Metrics
}
