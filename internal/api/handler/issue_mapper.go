package handler

import (
	"fmt"
	"time"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
	"github.com/lankacivic/issue-tracker/internal/core/ports"
)

// --- Request → Service input ---

func toAddIssueInput(req createIssueRequest, createdBy string) (ports.AddIssueInput, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return ports.AddIssueInput{}, fmt.Errorf("%w: date must be formatted as %s", domain.ErrValidation, dateLayout)
	}
	return ports.AddIssueInput{
		Title:            req.Title,
		Date:             date,
		District:         req.District,
		Province:         req.Province,
		AffectedArea:     req.AffectedArea,
		Description:      req.Description,
		ExpectedSolution: req.ExpectedSolution,
		CreatedBy:        createdBy,
	}, nil
}

func toIssueEdit(req editIssueRequest) domain.IssueEdit {
	return domain.IssueEdit{
		Title:            req.Title,
		Description:      req.Description,
		ExpectedSolution: req.ExpectedSolution,
		AffectedArea:     req.AffectedArea,
	}
}

// --- Domain → Response ---

func toIssueResponse(i domain.Issue, viewer string) issueResponse {
	var date string
	if i.HasDate() {
		date = i.Date.Format(dateLayout)
	}
	return issueResponse{
		ID:               i.ID,
		Title:            i.Title,
		Date:             date,
		District:         i.District,
		Province:         i.Province,
		AffectedArea:     i.AffectedArea,
		Description:      i.Description,
		ExpectedSolution: i.ExpectedSolution,
		CreatedBy:        i.CreatedBy,
		Editable:         i.OwnedBy(viewer),
	}
}

func toIssueListResponse(issues []domain.Issue, viewer string) issueListResponse {
	out := make([]issueResponse, 0, len(issues))
	for _, i := range issues {
		out = append(out, toIssueResponse(i, viewer))
	}
	return issueListResponse{Issues: out, Count: len(out)}
}

func toUserResponse(u *domain.User) userResponse {
	resp := userResponse{Username: u.Username}
	if !u.CreatedAt.IsZero() {
		resp.CreatedAt = u.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
