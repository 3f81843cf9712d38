package http

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"cartaseo/app/internal/domain/seo"
)

type pageSlugInput struct {
	Slug string `path:"slug"`
}

type pageUpdateInput struct {
	ID   uint `path:"id"`
	Body struct {
		Title           *string  `json:"title,omitempty"`
		MetaDescription *string  `json:"metaDescription,omitempty"`
		Content         *string  `json:"content,omitempty"`
		Keywords        []string `json:"keywords,omitempty"`
		Active          *bool    `json:"active,omitempty"`
	}
}

type pageResponse struct {
	Body pageBody
}

type trackViewResponse struct {
	Body struct {
		Tracked bool `json:"tracked"`
	}
}

func (s *Server) registerPageRoutes() {
	huma.Get(s.api, "/api/pages/{slug}", s.getPageHandler, func(op *huma.Operation) {
		op.Summary = "Fetch an active page"
	})

	huma.Post(s.api, "/api/pages/{slug}/views", s.trackViewHandler, func(op *huma.Operation) {
		op.Summary = "Record a page view"
	})

	huma.Patch(s.api, "/api/pages/{id}", s.updatePageHandler, func(op *huma.Operation) {
		op.Summary = "Edit a page"
	})

	huma.Post(s.api, "/api/pages/{slug}/deactivate", s.deactivatePageHandler, func(op *huma.Operation) {
		op.Summary = "Deactivate a page"
	})
}

func (s *Server) getPageHandler(ctx context.Context, input *pageSlugInput) (*pageResponse, error) {
	slug := strings.TrimSpace(input.Slug)
	page, err := s.seo.GetPage(ctx, slug)
	if err != nil {
		return nil, s.apiError(ctx, err, "loading page", logrus.Fields{"slug": slug})
	}
	return &pageResponse{Body: newPageBody(page)}, nil
}

// trackViewHandler always answers 200; tracking failures are only logged.
func (s *Server) trackViewHandler(ctx context.Context, input *pageSlugInput) (*trackViewResponse, error) {
	resp := &trackViewResponse{}
	resp.Body.Tracked = s.seo.TrackView(ctx, strings.TrimSpace(input.Slug))
	return resp, nil
}

func (s *Server) updatePageHandler(ctx context.Context, input *pageUpdateInput) (*pageResponse, error) {
	update := seo.PageUpdate{
		Title:           input.Body.Title,
		MetaDescription: input.Body.MetaDescription,
		Content:         input.Body.Content,
		Keywords:        input.Body.Keywords,
		Active:          input.Body.Active,
	}

	page, err := s.seo.UpdatePage(ctx, input.ID, update)
	if err != nil {
		return nil, s.apiError(ctx, err, "updating page", logrus.Fields{"page_id": input.ID})
	}
	return &pageResponse{Body: newPageBody(page)}, nil
}

func (s *Server) deactivatePageHandler(ctx context.Context, input *pageSlugInput) (*pageResponse, error) {
	slug := strings.TrimSpace(input.Slug)
	page, err := s.seo.DeactivatePage(ctx, slug)
	if err != nil {
		return nil, s.apiError(ctx, err, "deactivating page", logrus.Fields{"slug": slug})
	}
	return &pageResponse{Body: newPageBody(page)}, nil
}

