package http

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/getsentry/sentry-go"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"cartaseo/app/internal/domain/auth"
	"cartaseo/app/internal/domain/seo"
)

const errorFallbackMessage = "We couldn't process your request right now."

// apiError maps domain errors onto HTTP errors. Only unexpected failures are recorded.
func (s *Server) apiError(ctx context.Context, err error, message string, fields logrus.Fields) error {
	switch {
	case eris.Is(err, seo.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case eris.Is(err, auth.ErrUnauthenticated):
		return huma.Error401Unauthorized("authentication required")
	case eris.Is(err, seo.ErrNotFound):
		return huma.Error404NotFound("not found")
	default:
		s.recordError(ctx, err, message, fields)
		return huma.Error500InternalServerError(errorFallbackMessage)
	}
}

func (s *Server) recordError(ctx context.Context, err error, message string, fields logrus.Fields) {
	if err == nil {
		return
	}

	if s.logger != nil {
		entry := s.logger.WithField("error", err.Error())
		if fields != nil {
			entry = entry.WithFields(fields)
		}
		if requestID := RequestIDFromContext(ctx); requestID != "" {
			entry = entry.WithField("request_id", requestID)
		}
		entry.Error(message)
	}

	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		hub.CaptureException(err)
		return
	}
	if s.sentry != nil {
		s.sentry.CaptureException(err)
	}
}
