package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
)

type categoryRequest struct {
	Name  string      `json:"name"`
	Color model.Color `json:"color"`
}

func (s *Server) handleListCategories(c echo.Context) error {
	categories, err := s.repo.ListCategories(c.Request().Context())
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (s *Server) handleCreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return errorJSON(c, http.StatusBadRequest, "name must not be empty")
	}
	if !req.Color.Valid() {
		return errorJSON(c, http.StatusBadRequest, "invalid color "+string(req.Color))
	}

	cat, err := s.repo.CreateCategory(c.Request().Context(), req.Name, req.Color)
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusCreated, cat)
}

func (s *Server) handleUpdateCategory(c echo.Context) error {
	var req model.CategoryUpdate
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	cat, err := s.repo.UpdateCategory(c.Request().Context(), c.Param("id"), req)
	if errors.Is(err, ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "category not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (s *Server) handleDeleteCategory(c echo.Context) error {
	id := c.Param("id")
	cleared, err := s.repo.DeleteCategory(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "category not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}

	s.log.Info("Category deleted", logger.F("id", id), logger.F("tasks_cleared", cleared))
	return c.NoContent(http.StatusNoContent)
}
