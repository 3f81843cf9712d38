package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

const defaultGenerateLimit = 10

type generateInput struct {
	Body struct {
		TemplateType string `json:"templateType" doc:"profession, city, combined or all"`
		Limit        int    `json:"limit,omitempty" doc:"Maximum pages per type, defaults to 10"`
	}
}

type generateResponse struct {
	Body struct {
		Success      bool   `json:"success"`
		PagesCreated int    `json:"pagesCreated"`
		Skipped      int    `json:"skipped"`
		Message      string `json:"message"`
	}
}

func (s *Server) registerGenerateRoute() {
	huma.Post(s.api, "/api/seo/generate", s.generateHandler, func(op *huma.Operation) {
		op.Summary = "Generate SEO pages"
	})
}

func (s *Server) generateHandler(ctx context.Context, input *generateInput) (*generateResponse, error) {
	templateType := strings.TrimSpace(input.Body.TemplateType)
	limit := input.Body.Limit
	if limit == 0 {
		limit = defaultGenerateLimit
	}

	result, err := s.generator.GenerateSeoPages(ctx, templateType, limit)
	if err != nil {
		return nil, s.apiError(ctx, err, "generating seo pages", logrus.Fields{
			"template_type": templateType,
			"limit":         limit,
		})
	}

	resp := &generateResponse{}
	resp.Body.Success = true
	resp.Body.PagesCreated = result.Created
	resp.Body.Skipped = result.Skipped
	resp.Body.Message = fmt.Sprintf("Successfully generated %d SEO pages", result.Created)
	return resp, nil
}
