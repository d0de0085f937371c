package domain

import "time"

// Issue is a single reported civic problem as held in the registry.
type Issue struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Date             time.Time `json:"date"`
	District         string    `json:"district"`
	Province         string    `json:"province"`
	AffectedArea     string    `json:"affected_area"`
	Description      string    `json:"description"`
	ExpectedSolution string    `json:"expected_solution"`
	CreatedBy        string    `json:"created_by"`
}

// OwnedBy reports whether username reported the issue.
func (i Issue) OwnedBy(username string) bool {
	return username != "" && i.CreatedBy == username
}

// HasDate reports whether the issue carries a real date. Issues loaded from
// records with no stored date keep the zero time.
func (i Issue) HasDate() bool {
	return !i.Date.IsZero()
}

// Apply overwrites the editable fields. Date, district, province and
// reporter are never touched.
func (i *Issue) Apply(e IssueEdit) {
	i.Title = e.Title
	i.Description = e.Description
	i.ExpectedSolution = e.ExpectedSolution
	i.AffectedArea = e.AffectedArea
}

// IssueEdit carries the four fields that may change after creation.
type IssueEdit struct {
	Title            string
	Description      string
	ExpectedSolution string
	AffectedArea     string
}

// IssueRecord is the persisted form of an issue.
//
// StoreID is assigned by the store. IssueID holds the registry identifier
// and is empty for legacy rows written before identifiers were persisted.
// Date is nil when the row has no stored date.
type IssueRecord struct {
	StoreID          string
	IssueID          string
	Title            string
	Date             *time.Time
	District         string
	Province         string
	AffectedArea     string
	Description      string
	ExpectedSolution string
	CreatedBy        string
}

// NewIssueRecord builds the record persisted for a freshly created issue.
func NewIssueRecord(i Issue) *IssueRecord {
	date := i.Date
	return &IssueRecord{
		IssueID:          i.ID,
		Title:            i.Title,
		Date:             &date,
		District:         i.District,
		Province:         i.Province,
		AffectedArea:     i.AffectedArea,
		Description:      i.Description,
		ExpectedSolution: i.ExpectedSolution,
		CreatedBy:        i.CreatedBy,
	}
}

// Legacy reports whether the record predates persisted identifiers.
func (r *IssueRecord) Legacy() bool {
	return r.IssueID == ""
}
