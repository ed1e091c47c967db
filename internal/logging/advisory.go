package logging

import "go.uber.org/zap"

// AdvisorySink forwards normalizer advisories to a zap logger at warn level.
type AdvisorySink struct {
	logger *zap.Logger
}

// NewAdvisorySink returns a sink writing to logger, or to the global logger when nil.
func NewAdvisorySink(logger *zap.Logger) *AdvisorySink {
	return &AdvisorySink{logger: logger}
}

// Warn logs msg as an input advisory.
func (s *AdvisorySink) Warn(msg string) {
	l := s.logger
	if l == nil {
		l = Logger
	}
	l.Warn(msg, zap.String("kind", "advisory"))
}
