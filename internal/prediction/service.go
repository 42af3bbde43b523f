// Package prediction asks the assistant first and falls back to keyword extraction.
package prediction

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resource-allocator/internal/ai"
	"github.com/spigell/resource-allocator/internal/extraction"
	"github.com/spigell/resource-allocator/internal/logger"
)

type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

const defaultTimeout = 60 * time.Second

type Service struct {
	assistant ai.Assistant
	timeout   time.Duration
	logger    *zap.Logger
}

// NewService accepts a nil assistant, in which case every prediction is keyword based.
func NewService(assistant ai.Assistant, timeout time.Duration, log *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Service{
		assistant: assistant,
		timeout:   timeout,
		logger:    log,
	}
}

func (s *Service) Summary(ctx context.Context, description string) (string, Source) {
	if s.assistant != nil {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		summary, err := s.assistant.Summarize(ctx, description)
		if err == nil {
			return summary, SourceAI
		}
		s.warn("summary", err)
	}

	return extraction.Summarize(description), SourceFallback
}

func (s *Service) Parameters(ctx context.Context, description string) (extraction.Parameters, Source) {
	if s.assistant != nil {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		params, err := s.assistant.PredictParameters(ctx, description)
		if err == nil && params != nil {
			return *params, SourceAI
		}
		s.warn("parameters", err)
	}

	return extraction.PredictParameters(description), SourceFallback
}

// Skills treats an empty assistant answer as a failure.
func (s *Service) Skills(ctx context.Context, description string) ([]string, Source) {
	if s.assistant != nil {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		skills, err := s.assistant.PredictSkills(ctx, description)
		if err == nil && len(skills) > 0 {
			return skills, SourceAI
		}
		s.warn("skills", err)
	}

	return extraction.ExtractSkills(description), SourceFallback
}

func (s *Service) warn(kind string, err error) {
	fields := append(logger.StringFields(
		logger.StringField{Key: "prediction", Value: kind},
		logger.StringField{Key: logger.FieldSource, Value: string(SourceFallback)},
	), zap.Error(err))
	s.logger.Warn("assistant prediction failed, using keyword fallback", fields...)
}
