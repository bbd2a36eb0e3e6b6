package errors

import (
	"errors"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorMapper translates a domain or application error into a Problem.
type ErrorMapper func(err error) (Problem, bool)

// Responder writes Problem envelopes, consulting mappers before falling back to a 500.
type Responder struct {
	logger  *slog.Logger
	mappers []ErrorMapper
}

// NewResponder creates a responder with the provided error mappers.
func NewResponder(logger *slog.Logger, mappers ...ErrorMapper) *Responder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Responder{logger: logger, mappers: mappers}
}

// Respond writes the problem with its status code.
func (r *Responder) Respond(c *gin.Context, problem Problem) {
	problem = problem.normalized()
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err to a Problem. Unmapped errors are logged and answered with a generic 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var problem Problem
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	for _, mapper := range r.mappers {
		if mapped, ok := mapper(err); ok {
			r.Respond(c, mapped)
			return
		}
	}
	r.logger.ErrorContext(c.Request.Context(), "unhandled request error",
		slog.String("method", c.Request.Method),
		slog.String("path", c.FullPath()),
		slog.String("error", err.Error()),
	)
	r.Respond(c, ErrInternal)
}
