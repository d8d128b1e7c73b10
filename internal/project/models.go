package project

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project status values form a closed, lower-case set. Legacy documents with
// capitalized statuses are normalized at the boundary.
const (
	StatusPending      = "pending"
	StatusActive       = "active"
	StatusCompleted    = "completed"
	StatusDiscontinued = "discontinued"
)

// Funding request / rollup statuses.
const (
	FundingNone      = "none"
	FundingPending   = "pending"
	FundingApproved  = "approved"
	FundingRejected  = "rejected"
	FundingDisbursed = "disbursed"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusActive, StatusCompleted, StatusDiscontinued:
		return true
	}
	return false
}

// NormalizeStatus lower-cases legacy casing ("Active", "Completed") so the
// closed enum holds for documents written by earlier schema revisions.
func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// Report is an embedded project report, written by the owning NGO or an
// assigned frontliner.
type Report struct {
	Type        string             `bson:"type" json:"type"`
	Content     string             `bson:"content" json:"content"`
	Attachments []string           `bson:"attachments" json:"attachments"`
	GeneratedBy primitive.ObjectID `bson:"generated_by" json:"generatedBy"`
	GeneratedAt time.Time          `bson:"generated_at" json:"generatedAt"`
	Status      string             `bson:"status" json:"status"`
}

// FundingRequest is an embedded request against the project budget.
type FundingRequest struct {
	Amount      float64   `bson:"amount" json:"amount"`
	Purpose     string    `bson:"purpose" json:"purpose"`
	Timeline    string    `bson:"timeline" json:"timeline"`
	Documents   []string  `bson:"documents" json:"documents"`
	SubmittedAt time.Time `bson:"submitted_at" json:"submittedAt"`
	Status      string    `bson:"status" json:"status"`
}

type Project struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Title           string               `bson:"title" json:"title"`
	Description     string               `bson:"description" json:"description"`
	Objectives      string               `bson:"objectives" json:"objectives"`
	Category        string               `bson:"category" json:"category"`
	Location        string               `bson:"location" json:"location"`
	Budget          float64              `bson:"budget" json:"budget"`
	Funding         float64              `bson:"funding" json:"funding"`
	FundingStatus   string               `bson:"funding_status" json:"fundingStatus"`
	Status          string               `bson:"status" json:"status"`
	Progress        int                  `bson:"progress" json:"progress"`
	StartDate       time.Time            `bson:"start_date" json:"startDate"`
	Timeline        string               `bson:"timeline" json:"timeline"`
	Notes           string               `bson:"notes" json:"notes"`
	CreatedBy       primitive.ObjectID   `bson:"created_by" json:"createdBy"`
	AssignedTo      []primitive.ObjectID `bson:"assigned_to" json:"assignedTo"`
	Reports         []Report             `bson:"reports" json:"reports"`
	FundingRequests []FundingRequest     `bson:"funding_requests" json:"fundingRequests"`
	ReportSubmitted bool                 `bson:"report_submitted" json:"reportSubmitted"`
	CreatedAt       time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time            `bson:"updated_at" json:"updatedAt"`
}

// IsAssigned reports whether the user appears in the project's assignment list.
func (p *Project) IsAssigned(userID primitive.ObjectID) bool {
	for _, id := range p.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

type CreateProjectRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Objectives  string    `json:"objectives"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Budget      float64   `json:"budget"`
	StartDate   time.Time `json:"startDate"`
	Timeline    string    `json:"timeline"`
	CreatedBy   string    `json:"createdBy"`
	AssignedTo  []string  `json:"assignedTo"`
}

// UpdateProjectRequest carries a shallow merge: only set fields are written,
// identity fields (_id, createdBy) are not representable here at all.
type UpdateProjectRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Objectives  *string    `json:"objectives"`
	Category    *string    `json:"category"`
	Location    *string    `json:"location"`
	Budget      *float64   `json:"budget"`
	Funding     *float64   `json:"funding"`
	Status      *string    `json:"status"`
	Progress    *int       `json:"progress"`
	StartDate   *time.Time `json:"startDate"`
	Timeline    *string    `json:"timeline"`
	Notes       *string    `json:"notes"`
	AssignedTo  []string   `json:"assignedTo"`
}

type ProgressUpdateRequest struct {
	Progress *int    `json:"progress"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
}

type SubmitReportRequest struct {
	ReportContent string   `json:"reportContent"`
	Attachments   []string `json:"attachments"`
}

type GenerateReportRequest struct {
	ProjectID   string   `json:"projectId"`
	ReportType  string   `json:"reportType"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
}

type FundingRequestInput struct {
	ProjectID string   `json:"projectId"`
	Amount    float64  `json:"amount"`
	Purpose   string   `json:"purpose"`
	Timeline  string   `json:"timeline"`
	Documents []string `json:"documents"`
}

// FundingSummary is the NGO funding-status rollup.
type FundingSummary struct {
	TotalRequested   float64 `json:"totalRequested"`
	TotalApproved    float64 `json:"totalApproved"`
	TotalDisbursed   float64 `json:"totalDisbursed"`
	PendingRequests  int     `json:"pendingRequests"`
	ApprovedRequests int     `json:"approvedRequests"`
	RejectedRequests int     `json:"rejectedRequests"`
}

// ProjectReport is a report flattened with its project context for listings.
type ProjectReport struct {
	Report
	ProjectTitle string `json:"projectTitle"`
	ProjectID    string `json:"projectId"`
}
