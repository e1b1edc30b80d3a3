package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder writes Problem Details responses.
type Responder struct {
	// BaseURI is prepended to relative problem type URIs.
	BaseURI string
	// Fallback is used for errors no mapper recognised.
	Fallback ProblemDetail
}

func NewResponder(baseURI string) *Responder {
	return &Responder{BaseURI: baseURI, Fallback: ErrInternal}
}

func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError passes ProblemDetail errors through and renders anything else with the fallback.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, r.Fallback.WithDetail(err.Error()))
}

func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// ErrorMapper maps domain/application errors to ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder tries each mapper in order before the fallback.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(baseURI),
		mappers:   mappers,
	}
}

// WithFallback returns a copy that renders unmapped errors with problem.
func (r *ChainedResponder) WithFallback(problem ProblemDetail) *ChainedResponder {
	base := *r.Responder
	base.Fallback = problem
	return &ChainedResponder{Responder: &base, mappers: r.mappers}
}

func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}
