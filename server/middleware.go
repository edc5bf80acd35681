package server

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/existflow/taskdeck/internal/logger"
)

// requestLogger logs every request with its outcome
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		res := c.Response()
		fields := []logger.Field{
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()),
		}
		if id := res.Header().Get(echo.HeaderXRequestID); id != "" {
			fields = append(fields, logger.F("request_id", id))
		}

		switch {
		case res.Status >= 500:
			s.log.Error("HTTP Response", fields...)
		case res.Status >= 400:
			s.log.Warn("HTTP Response", fields...)
		default:
			s.log.Info("HTTP Response", fields...)
		}

		return nil
	}
}
