package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"fakebuster/internal/engine"
	"fakebuster/internal/reader"
	"fakebuster/internal/schema"
)

const maxRequestBodyBytes = 1 * 1024 * 1024

func (s *Server) handleCheck(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxRequestBodyBytes))
	if err != nil {
		return fail(c, http.StatusBadRequest, "Failed to read request body", nil)
	}

	req, err := schema.ValidateCheckRequest(body)
	if err != nil {
		return failValidation(c, map[string]string{"body": err.Error()})
	}

	article := strings.TrimSpace(req.Article)
	if article == "" {
		extracted, err := reader.FetchArticleText(c.Request().Context(), req.URL)
		if err != nil {
			s.logger.Warn().Err(err).Str("url", req.URL).Msg("article extraction failed")
			return fail(c, http.StatusBadRequest, "Could not extract article text from url", nil)
		}
		article = extracted
	}

	resp, err := s.engine.Check(c.Request().Context(), engine.CheckRequest{
		Article:  article,
		TopK:     req.TopK,
		Strategy: req.Strategy,
	})
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInput) {
			return fail(c, http.StatusBadRequest, err.Error(), nil)
		}
		s.logger.Error().Err(err).Msg("check failed")
		return internalError(c, "Failed to check article")
	}

	return success(c, resp)
}

func (s *Server) handleRelated(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return failValidation(c, map[string]string{"q": "is required"})
	}

	resp, err := s.engine.Related(c.Request().Context(), query)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInput) {
			return fail(c, http.StatusBadRequest, err.Error(), nil)
		}
		s.logger.Error().Err(err).Msg("related-news lookup failed")
		return internalError(c, "Failed to load related news")
	}

	return success(c, resp)
}
