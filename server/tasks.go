package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/existflow/taskdeck/internal/logger"
	"github.com/existflow/taskdeck/internal/model"
)

func (s *Server) handleListTasks(c echo.Context) error {
	tasks, err := s.repo.ListTasks(c.Request().Context())
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req model.NewTask
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	req = req.WithDefaults()
	if err := req.Validate(); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	ok, err := s.repo.GroupExists(ctx, req.GroupID)
	if err != nil {
		return s.internalError(c, err)
	}
	if !ok {
		return errorJSON(c, http.StatusBadRequest, "unknown group "+req.GroupID)
	}
	if ok, err := s.categoryUsable(ctx, req.CategoryID); err != nil {
		return s.internalError(c, err)
	} else if !ok {
		return errorJSON(c, http.StatusBadRequest, "unknown category "+req.CategoryID)
	}

	task, err := s.repo.CreateTask(ctx, req)
	if err != nil {
		return s.internalError(c, err)
	}

	s.log.Debug("Task created", logger.F("id", task.ID), logger.F("group", task.GroupID))
	return c.JSON(http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	id := c.Param("id")

	var req model.TaskUpdate
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	if req.CategoryID != nil {
		if ok, err := s.categoryUsable(ctx, *req.CategoryID); err != nil {
			return s.internalError(c, err)
		} else if !ok {
			return errorJSON(c, http.StatusBadRequest, "unknown category "+*req.CategoryID)
		}
	}

	task, err := s.repo.UpdateTask(ctx, id, req)
	if errors.Is(err, ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	err := s.repo.DeleteTask(c.Request().Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}
	if err != nil {
		return s.internalError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// categoryUsable reports whether a task may reference the category. An
// empty id means no category.
func (s *Server) categoryUsable(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return true, nil
	}
	return s.repo.CategoryExists(ctx, id)
}

func (s *Server) internalError(c echo.Context, err error) error {
	s.log.Error("Request failed",
		logger.F("method", c.Request().Method),
		logger.F("path", c.Path()),
		logger.F("error", err))
	return errorJSON(c, http.StatusInternalServerError, "internal server error")
}
