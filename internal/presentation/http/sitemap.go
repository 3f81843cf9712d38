package http

import (
	"context"
	stdhttp "net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

const (
	xmlContentType       = "application/xml; charset=utf-8"
	textContentType      = "text/plain; charset=utf-8"
	sitemapCacheControl  = "public, max-age=3600"
	sitemapFailureBody   = "Error generating sitemap"
	sitemapFailureHeader = "no-store"
)

type sitemapResponse struct {
	Status       int
	ContentType  string `header:"Content-Type"`
	CacheControl string `header:"Cache-Control"`
	AllowOrigin  string `header:"Access-Control-Allow-Origin"`
	Body         []byte
}

type sitemapEntryBody struct {
	Loc        string    `json:"loc"`
	LastMod    string    `json:"lastmod"`
	ChangeFreq string    `json:"changefreq"`
	Priority   string    `json:"priority"`
	Category   string    `json:"category,omitempty"`
	Modified   time.Time `json:"modified"`
}

type sitemapEntriesResponse struct {
	Body struct {
		Entries []sitemapEntryBody `json:"entries"`
	}
}

func (s *Server) registerSitemapRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-sitemap-xml",
		Method:      stdhttp.MethodGet,
		Path:        "/sitemap.xml",
		Summary:     "Sitemap document",
		Responses:   rawResponses(xmlContentType, stdhttp.StatusInternalServerError),
	}, s.sitemapHandler)

	huma.Get(s.api, "/api/sitemap", s.sitemapEntriesHandler, func(op *huma.Operation) {
		op.Summary = "List sitemap entries"
	})
}

// sitemapHandler serves the same document whatever the request host, so it can be
// mounted behind every public hostname.
func (s *Server) sitemapHandler(ctx context.Context, _ *struct{}) (*sitemapResponse, error) {
	document, err := s.sitemap.Document(ctx)
	if err != nil {
		s.recordError(ctx, err, "generating sitemap", nil)
		return &sitemapResponse{
			Status:       stdhttp.StatusInternalServerError,
			ContentType:  textContentType,
			CacheControl: sitemapFailureHeader,
			Body:         []byte(sitemapFailureBody),
		}, nil
	}

	return &sitemapResponse{
		Status:       stdhttp.StatusOK,
		ContentType:  xmlContentType,
		CacheControl: sitemapCacheControl,
		AllowOrigin:  "*",
		Body:         document,
	}, nil
}

func (s *Server) sitemapEntriesHandler(ctx context.Context, _ *struct{}) (*sitemapEntriesResponse, error) {
	entries, err := s.sitemap.Entries(ctx)
	if err != nil {
		return nil, s.apiError(ctx, err, "listing sitemap entries", nil)
	}

	resp := &sitemapEntriesResponse{}
	resp.Body.Entries = make([]sitemapEntryBody, 0, len(entries))
	for _, entry := range entries {
		resp.Body.Entries = append(resp.Body.Entries, sitemapEntryBody{
			Loc:        entry.Loc,
			LastMod:    entry.LastMod(),
			ChangeFreq: string(entry.ChangeFrequency),
			Priority:   entry.Priority,
			Category:   string(entry.Category),
			Modified:   entry.LastModified,
		})
	}
	return resp, nil
}

func rawResponses(contentType string, statuses ...int) map[string]*huma.Response {
	responses := map[string]*huma.Response{
		strconv.Itoa(stdhttp.StatusOK): {
			Description: stdhttp.StatusText(stdhttp.StatusOK),
			Content: map[string]*huma.MediaType{
				contentType: {Schema: &huma.Schema{Type: "string"}},
			},
		},
	}
	for _, status := range statuses {
		responses[strconv.Itoa(status)] = &huma.Response{
			Description: stdhttp.StatusText(status),
			Content: map[string]*huma.MediaType{
				textContentType: {Schema: &huma.Schema{Type: "string"}},
			},
		}
	}
	return responses
}
