package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type groupRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListGroups(c echo.Context) error {
	groups, err := s.repo.ListGroups(c.Request().Context())
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusOK, groups)
}

func (s *Server) handleCreateGroup(c echo.Context) error {
	var req groupRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return errorJSON(c, http.StatusBadRequest, "name must not be empty")
	}

	g, err := s.repo.CreateGroup(c.Request().Context(), req.Name)
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusCreated, g)
}
