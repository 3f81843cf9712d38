package http

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

type entityRefInput struct {
	Ref string `path:"ref"`
}

type professionListResponse struct {
	Body struct {
		Professions []professionBody `json:"professions"`
	}
}

type cityListResponse struct {
	Body struct {
		Cities []cityBody `json:"cities"`
	}
}

type professionDetailResponse struct {
	Body struct {
		Profession *professionBody   `json:"profession"`
		Pages      []pageSummaryBody `json:"pages"`
	}
}

type cityDetailResponse struct {
	Body struct {
		City  *cityBody         `json:"city"`
		Pages []pageSummaryBody `json:"pages"`
	}
}

func (s *Server) registerEntityRoutes() {
	huma.Get(s.api, "/api/professions", s.listProfessionsHandler, func(op *huma.Operation) {
		op.Summary = "List active professions"
	})
	huma.Get(s.api, "/api/professions/{ref}", s.getProfessionHandler, func(op *huma.Operation) {
		op.Summary = "Fetch a profession by slug or id"
	})
	huma.Get(s.api, "/api/cities", s.listCitiesHandler, func(op *huma.Operation) {
		op.Summary = "List active cities"
	})
	huma.Get(s.api, "/api/cities/{ref}", s.getCityHandler, func(op *huma.Operation) {
		op.Summary = "Fetch a city by slug or id"
	})
}

func (s *Server) listProfessionsHandler(ctx context.Context, _ *struct{}) (*professionListResponse, error) {
	professions, err := s.seo.ListProfessions(ctx)
	if err != nil {
		return nil, s.apiError(ctx, err, "listing professions", nil)
	}

	resp := &professionListResponse{}
	resp.Body.Professions = make([]professionBody, 0, len(professions))
	for idx := range professions {
		resp.Body.Professions = append(resp.Body.Professions, *newProfessionBody(&professions[idx]))
	}
	return resp, nil
}

func (s *Server) getProfessionHandler(ctx context.Context, input *entityRefInput) (*professionDetailResponse, error) {
	ref := strings.TrimSpace(input.Ref)
	detail, err := s.seo.GetProfession(ctx, ref)
	if err != nil {
		return nil, s.apiError(ctx, err, "loading profession", logrus.Fields{"ref": ref})
	}

	resp := &professionDetailResponse{}
	resp.Body.Profession = newProfessionBody(&detail.Profession)
	resp.Body.Pages = newSummaryBodies(detail.Pages)
	return resp, nil
}

func (s *Server) listCitiesHandler(ctx context.Context, _ *struct{}) (*cityListResponse, error) {
	cities, err := s.seo.ListCities(ctx)
	if err != nil {
		return nil, s.apiError(ctx, err, "listing cities", nil)
	}

	resp := &cityListResponse{}
	resp.Body.Cities = make([]cityBody, 0, len(cities))
	for idx := range cities {
		resp.Body.Cities = append(resp.Body.Cities, *newCityBody(&cities[idx]))
	}
	return resp, nil
}

func (s *Server) getCityHandler(ctx context.Context, input *entityRefInput) (*cityDetailResponse, error) {
	ref := strings.TrimSpace(input.Ref)
	detail, err := s.seo.GetCity(ctx, ref)
	if err != nil {
		return nil, s.apiError(ctx, err, "loading city", logrus.Fields{"ref": ref})
	}

	resp := &cityDetailResponse{}
	resp.Body.City = newCityBody(&detail.City)
	resp.Body.Pages = newSummaryBodies(detail.Pages)
	return resp, nil
}
