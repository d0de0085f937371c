package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// dateLayout is the calendar-date format used on the wire.
const dateLayout = "2006-01-02"

// --- Auth ---

type registerRequest struct {
	Username        string `json:"username"         validate:"required,max=64"`
	Password        string `json:"password"         validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	Username  string `json:"username"`
	CreatedAt string `json:"created_at,omitempty"`
}

type loginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
}

// --- Issues ---

type createIssueRequest struct {
	Title            string `json:"title"             validate:"required,max=200"`
	Date             string `json:"date"              validate:"required,datetime=2006-01-02"`
	District         string `json:"district"          validate:"required,district"`
	Province         string `json:"province"          validate:"required,province"`
	AffectedArea     string `json:"affected_area"`
	Description      string `json:"description"`
	ExpectedSolution string `json:"expected_solution"`
}

type editIssueRequest struct {
	Title            string `json:"title"             validate:"required,max=200"`
	Description      string `json:"description"`
	ExpectedSolution string `json:"expected_solution"`
	AffectedArea     string `json:"affected_area"`
}

type issueResponse struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Date             string `json:"date"`
	District         string `json:"district"`
	Province         string `json:"province"`
	AffectedArea     string `json:"affected_area"`
	Description      string `json:"description"`
	ExpectedSolution string `json:"expected_solution"`
	CreatedBy        string `json:"created_by"`
	// Editable is true when the caller reported the issue.
	Editable bool `json:"editable"`
}

type issueListResponse struct {
	Issues []issueResponse `json:"issues"`
	Count  int             `json:"count"`
}

// --- Regions ---

type regionsResponse struct {
	Districts []string `json:"districts"`
	Provinces []string `json:"provinces"`
}
