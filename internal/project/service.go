package project

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"NGOConnect/internal/apperr"
	"NGOConnect/internal/policy"
)

// ProjectStore is the slice of ProjectRepository the service needs.
type ProjectStore interface {
	Create(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Project, error)
	FindAll(ctx context.Context) ([]*Project, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*Project, error)
	FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]*Project, error)
	Save(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type ProjectService struct {
	store  ProjectStore
	logger *zap.Logger
}

func NewProjectService(repo *ProjectRepository, logger *zap.Logger) *ProjectService {
	return &ProjectService{store: repo, logger: logger}
}

func parseObjectID(hex, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.BadRequest("Invalid " + what)
	}
	return id, nil
}

func parseAssignees(hexIDs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, h := range hexIDs {
		id, err := parseObjectID(h, "assignee id")
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Create inserts a project owned by ownerID with the initial lifecycle state.
func (s *ProjectService) Create(ctx context.Context, ownerID primitive.ObjectID, req CreateProjectRequest) (*Project, error) {
	if req.Title == "" {
		return nil, apperr.BadRequest("Title is required")
	}
	assignees, err := parseAssignees(req.AssignedTo)
	if err != nil {
		return nil, err
	}

	p := &Project{
		ID:              primitive.NewObjectID(),
		Title:           req.Title,
		Description:     req.Description,
		Objectives:      req.Objectives,
		Category:        req.Category,
		Location:        req.Location,
		Budget:          req.Budget,
		FundingStatus:   FundingNone,
		Status:          StatusPending,
		Progress:        0,
		StartDate:       req.StartDate,
		Timeline:        req.Timeline,
		CreatedBy:       ownerID,
		AssignedTo:      assignees,
		Reports:         []Report{},
		FundingRequests: []FundingRequest{},
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CreateGeneric is the admin-facing create: the owner comes from the body.
func (s *ProjectService) CreateGeneric(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	if req.Title == "" || req.StartDate.IsZero() || req.CreatedBy == "" {
		return nil, apperr.BadRequest("Title, start date, and partner NGO are required")
	}
	ownerID, err := parseObjectID(req.CreatedBy, "partner NGO id")
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, ownerID, req)
}

func (s *ProjectService) ListAll(ctx context.Context) ([]*Project, error) {
	return s.store.FindAll(ctx)
}

// GetFor applies the read gate: admins see every project, owners and
// assignees only their own, and everyone else gets not-found.
func (s *ProjectService) GetFor(ctx context.Context, userID primitive.ObjectID, role string, id primitive.ObjectID) (*Project, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if AccessDecision(p, userID, role) != policy.Allowed {
		return nil, apperr.NotFound("Project not found")
	}
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id primitive.ObjectID) (*Project, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("Project not found")
	}
	return p, nil
}

// applyUpdate merges set fields into p. Identity fields are not
// representable in the request type, so the merge cannot touch them.
func applyUpdate(p *Project, req UpdateProjectRequest) error {
	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.Objectives != nil {
		p.Objectives = *req.Objectives
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.Budget != nil {
		p.Budget = *req.Budget
	}
	if req.Funding != nil {
		p.Funding = *req.Funding
	}
	if req.Status != nil {
		status := NormalizeStatus(*req.Status)
		if !ValidStatus(status) {
			return apperr.BadRequest("Invalid project status")
		}
		p.Status = status
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return apperr.BadRequest("Progress must be between 0 and 100")
		}
		p.Progress = *req.Progress
	}
	if req.StartDate != nil {
		p.StartDate = *req.StartDate
	}
	if req.Timeline != nil {
		p.Timeline = *req.Timeline
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}
	if req.AssignedTo != nil {
		assignees, err := parseAssignees(req.AssignedTo)
		if err != nil {
			return err
		}
		p.AssignedTo = assignees
	}
	return nil
}

func (s *ProjectService) Update(ctx context.Context, id primitive.ObjectID, req UpdateProjectRequest) (*Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(p, req); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Project not found")
	}
	return nil
}

// Owner-scoped operations: decisions come from the project policy, and a
// policy miss is always a 404.

func (s *ProjectService) getOwned(ctx context.Context, ownerID, id primitive.ObjectID) (*Project, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if OwnerDecision(p, ownerID) != policy.Allowed {
		return nil, apperr.NotFound("Project not found")
	}
	return p, nil
}

func (s *ProjectService) ListOwned(ctx context.Context, ownerID primitive.ObjectID) ([]*Project, error) {
	return s.store.FindByOwner(ctx, ownerID)
}

func (s *ProjectService) GetOwned(ctx context.Context, ownerID, id primitive.ObjectID) (*Project, error) {
	return s.getOwned(ctx, ownerID, id)
}

func (s *ProjectService) UpdateOwned(ctx context.Context, ownerID, id primitive.ObjectID, req UpdateProjectRequest) (*Project, error) {
	p, err := s.getOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(p, req); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) DeleteOwned(ctx context.Context, ownerID, id primitive.ObjectID) error {
	if _, err := s.getOwned(ctx, ownerID, id); err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Project not found")
	}
	return nil
}

// FundingSummary recomputes the owner's funding rollup from scratch.
func (s *ProjectService) FundingSummary(ctx context.Context, ownerID primitive.ObjectID) (*FundingSummary, error) {
	projects, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary := &FundingSummary{}
	for _, p := range projects {
		summary.TotalRequested += p.Budget
		switch p.FundingStatus {
		case FundingApproved:
			summary.TotalApproved += p.Funding
			summary.ApprovedRequests++
		case FundingDisbursed:
			summary.TotalDisbursed += p.Funding
		case FundingPending:
			summary.PendingRequests++
		case FundingRejected:
			summary.RejectedRequests++
		}
	}
	return summary, nil
}

func (s *ProjectService) SubmitFundingRequest(ctx context.Context, ownerID primitive.ObjectID, input FundingRequestInput) (*FundingRequest, error) {
	if input.ProjectID == "" || input.Amount <= 0 {
		return nil, apperr.BadRequest("Project and a positive amount are required")
	}
	projectID, err := parseObjectID(input.ProjectID, "project id")
	if err != nil {
		return nil, err
	}
	p, err := s.getOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	request := FundingRequest{
		Amount:      input.Amount,
		Purpose:     input.Purpose,
		Timeline:    input.Timeline,
		Documents:   input.Documents,
		SubmittedAt: time.Now(),
		Status:      FundingPending,
	}
	p.FundingRequests = append(p.FundingRequests, request)
	p.FundingStatus = FundingPending

	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return &request, nil
}

// ListReports flattens every report across the owner's projects.
func (s *ProjectService) ListReports(ctx context.Context, ownerID primitive.ObjectID) ([]ProjectReport, error) {
	projects, err := s.store.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	reports := []ProjectReport{}
	for _, p := range projects {
		for _, r := range p.Reports {
			reports = append(reports, ProjectReport{
				Report:       r,
				ProjectTitle: p.Title,
				ProjectID:    p.ID.Hex(),
			})
		}
	}
	return reports, nil
}

func (s *ProjectService) GenerateReport(ctx context.Context, ownerID primitive.ObjectID, req GenerateReportRequest) (*Report, error) {
	projectID, err := parseObjectID(req.ProjectID, "project id")
	if err != nil {
		return nil, err
	}
	p, err := s.getOwned(ctx, ownerID, projectID)
	if err != nil {
		return nil, err
	}

	report := Report{
		Type:        req.ReportType,
		Content:     req.Content,
		Attachments: req.Attachments,
		GeneratedBy: ownerID,
		GeneratedAt: time.Now(),
		Status:      "draft",
	}
	p.Reports = append(p.Reports, report)

	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return &report, nil
}

// Assignee-scoped operations for frontliners.

func (s *ProjectService) getAssigned(ctx context.Context, userID, id primitive.ObjectID) (*Project, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if AssigneeDecision(p, userID) != policy.Allowed {
		return nil, apperr.NotFound("Project not found")
	}
	return p, nil
}

func (s *ProjectService) ListAssigned(ctx context.Context, userID primitive.ObjectID) ([]*Project, error) {
	return s.store.FindByAssignee(ctx, userID)
}

func (s *ProjectService) GetAssigned(ctx context.Context, userID, id primitive.ObjectID) (*Project, error) {
	return s.getAssigned(ctx, userID, id)
}

func (s *ProjectService) UpdateProgress(ctx context.Context, userID, id primitive.ObjectID, req ProgressUpdateRequest) (*Project, error) {
	p, err := s.getAssigned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	update := UpdateProjectRequest{Progress: req.Progress, Status: req.Status, Notes: req.Notes}
	if err := applyUpdate(p, update); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) SubmitReport(ctx context.Context, userID, id primitive.ObjectID, req SubmitReportRequest) (*Report, error) {
	if req.ReportContent == "" {
		return nil, apperr.BadRequest("Report content is required")
	}
	p, err := s.getAssigned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	report := Report{
		Type:        "field",
		Content:     req.ReportContent,
		Attachments: req.Attachments,
		GeneratedBy: userID,
		GeneratedAt: time.Now(),
		Status:      "submitted",
	}
	p.Reports = append(p.Reports, report)
	p.ReportSubmitted = true

	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}
	return &report, nil
}
