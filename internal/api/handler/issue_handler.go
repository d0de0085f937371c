package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lankacivic/issue-tracker/internal/api/metrics"
	"github.com/lankacivic/issue-tracker/internal/core/domain"
	"github.com/lankacivic/issue-tracker/internal/core/ports"
)

// IssueHandler serves the issue registry over HTTP.
type IssueHandler struct {
	registry ports.IssueRegistry
	log      zerolog.Logger
}

func NewIssueHandler(registry ports.IssueRegistry, log zerolog.Logger) *IssueHandler {
	return &IssueHandler{registry: registry, log: log}
}

// List handles GET /v1/issues.
//
// @Summary      List issues
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        mine     query     bool  false  "Only issues reported by the caller"
// @Param        refresh  query     bool  false  "Reload from the store before listing"
// @Success      200      {object}  issueListResponse
// @Failure      401      {object}  errorResponse
// @Failure      503      {object}  errorResponse
// @Router       /v1/issues [get]
func (h *IssueHandler) List(c echo.Context) error {
	username, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	if queryBool(c, "refresh") {
		if err := h.registry.Refresh(c.Request().Context()); err != nil {
			record("refresh", err)
			return err
		}
		record("refresh", nil)
	}

	var issues []domain.Issue
	if queryBool(c, "mine") {
		issues = h.registry.IssuesBy(username)
	} else {
		issues = h.registry.Issues()
	}
	return c.JSON(http.StatusOK, toIssueListResponse(issues, username))
}

// Get handles GET /v1/issues/:id.
//
// @Summary      Get an issue
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Issue identifier"
// @Success      200  {object}  issueResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/issues/{id} [get]
func (h *IssueHandler) Get(c echo.Context) error {
	username, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	issue, ok := h.registry.Issue(c.Param("id"))
	if !ok {
		return domain.ErrIssueNotFound
	}
	return c.JSON(http.StatusOK, toIssueResponse(issue, username))
}

// Create handles POST /v1/issues. The reporter is always the caller.
//
// @Summary      Report an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIssueRequest  true  "Issue details"
// @Success      201   {object}  issueResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/issues [post]
func (h *IssueHandler) Create(c echo.Context) error {
	username, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in, err := toAddIssueInput(req, username)
	if err != nil {
		return err
	}

	issue, err := h.registry.Add(c.Request().Context(), in)
	record("add", err)
	if err != nil {
		return err
	}

	metrics.IssuesTracked.Set(float64(len(h.registry.Issues())))
	return c.JSON(http.StatusCreated, toIssueResponse(issue, username))
}

// Update handles PUT /v1/issues/:id. Only the reporter may edit.
//
// @Summary      Edit an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Issue identifier"
// @Param        body  body      editIssueRequest  true  "Editable fields"
// @Success      200   {object}  issueResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/issues/{id} [put]
func (h *IssueHandler) Update(c echo.Context) error {
	username, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req editIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	issue, err := h.owned(c.Param("id"), username, "edit")
	if err != nil {
		return err
	}

	edit := toIssueEdit(req)
	err = h.registry.Edit(c.Request().Context(), issue, edit)
	record("edit", err)
	if err != nil {
		return err
	}

	issue.Apply(edit)
	return c.JSON(http.StatusOK, toIssueResponse(issue, username))
}

// Delete handles DELETE /v1/issues/:id. Only the reporter may delete.
//
// @Summary      Delete an issue
// @Tags         issues
// @Security     BearerAuth
// @Param        id   path  string  true  "Issue identifier"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/issues/{id} [delete]
func (h *IssueHandler) Delete(c echo.Context) error {
	username, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	issue, err := h.owned(c.Param("id"), username, "delete")
	if err != nil {
		return err
	}

	err = h.registry.Delete(c.Request().Context(), issue)
	record("delete", err)
	if err != nil {
		return err
	}

	metrics.IssuesTracked.Set(float64(len(h.registry.Issues())))
	return c.NoContent(http.StatusNoContent)
}

// owned looks up id and checks that username reported it.
func (h *IssueHandler) owned(id, username, op string) (domain.Issue, error) {
	issue, ok := h.registry.Issue(id)
	if !ok {
		record(op, domain.ErrIssueNotFound)
		return domain.Issue{}, domain.ErrIssueNotFound
	}
	if !issue.OwnedBy(username) {
		h.log.Warn().Str("issue_id", id).Str("username", username).Str("op", op).Msg("rejected change by non-reporter")
		record(op, domain.ErrForbidden)
		return domain.Issue{}, domain.ErrForbidden
	}
	return issue, nil
}

func record(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrForbidden):
		result = "forbidden"
	case errors.Is(err, domain.ErrIssueNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.IssueOperationsTotal.WithLabelValues(op, result).Inc()
}

func queryBool(c echo.Context, name string) bool {
	v, err := strconv.ParseBool(c.QueryParam(name))
	return err == nil && v
}
