package project

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"NGOConnect/internal/apperr"
	"NGOConnect/internal/policy"
)

type fakeProjectStore struct {
	projects map[primitive.ObjectID]*Project
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{projects: map[primitive.ObjectID]*Project{}}
}

func (f *fakeProjectStore) Create(_ context.Context, p *Project) error {
	copied := *p
	f.projects[p.ID] = &copied
	return nil
}

func (f *fakeProjectStore) FindByID(_ context.Context, id primitive.ObjectID) (*Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProjectStore) FindAll(_ context.Context) ([]*Project, error) {
	var out []*Project
	for _, p := range f.projects {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeProjectStore) FindByOwner(_ context.Context, ownerID primitive.ObjectID) ([]*Project, error) {
	var out []*Project
	for _, p := range f.projects {
		if p.CreatedBy == ownerID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeProjectStore) FindByAssignee(_ context.Context, userID primitive.ObjectID) ([]*Project, error) {
	var out []*Project
	for _, p := range f.projects {
		if p.IsAssigned(userID) {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeProjectStore) Save(_ context.Context, p *Project) error {
	copied := *p
	f.projects[p.ID] = &copied
	return nil
}

func (f *fakeProjectStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := f.projects[id]; !ok {
		return false, nil
	}
	delete(f.projects, id)
	return true, nil
}

func newTestService() (*ProjectService, *fakeProjectStore) {
	store := newFakeProjectStore()
	return &ProjectService{store: store, logger: zap.NewNop()}, store
}

func seedProject(store *fakeProjectStore, owner primitive.ObjectID, status string) *Project {
	p := &Project{
		ID:            primitive.NewObjectID(),
		Title:         "Clean Water Initiative",
		Budget:        50000,
		Status:        status,
		FundingStatus: FundingNone,
		CreatedBy:     owner,
		StartDate:     time.Now(),
	}
	store.projects[p.ID] = p
	return p
}

func TestCreateSetsInitialState(t *testing.T) {
	svc, _ := newTestService()
	owner := primitive.NewObjectID()

	p, err := svc.Create(context.Background(), owner, CreateProjectRequest{
		Title:     "Flood Relief",
		StartDate: time.Now(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Status != StatusPending {
		t.Errorf("Status = %q, want pending", p.Status)
	}
	if p.FundingStatus != FundingNone {
		t.Errorf("FundingStatus = %q, want none", p.FundingStatus)
	}
	if p.Progress != 0 {
		t.Errorf("Progress = %d, want 0", p.Progress)
	}
	if p.CreatedBy != owner {
		t.Error("owner not stamped")
	}
}

func TestCreateRequiresTitle(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), primitive.NewObjectID(), CreateProjectRequest{})
	if apperr.Status(err) != 400 {
		t.Fatalf("status = %d, want 400", apperr.Status(err))
	}
}

func TestUpdateNormalizesLegacyStatus(t *testing.T) {
	svc, store := newTestService()
	p := seedProject(store, primitive.NewObjectID(), StatusPending)

	legacy := "Active"
	updated, err := svc.Update(context.Background(), p.ID, UpdateProjectRequest{Status: &legacy})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != StatusActive {
		t.Errorf("Status = %q, want active", updated.Status)
	}

	bogus := "archived"
	if _, err := svc.Update(context.Background(), p.ID, UpdateProjectRequest{Status: &bogus}); apperr.Status(err) != 400 {
		t.Errorf("invalid status: status code = %d, want 400", apperr.Status(err))
	}
}

func TestUpdateValidatesProgressRange(t *testing.T) {
	svc, store := newTestService()
	p := seedProject(store, primitive.NewObjectID(), StatusActive)

	for _, progress := range []int{-1, 101} {
		v := progress
		if _, err := svc.Update(context.Background(), p.ID, UpdateProjectRequest{Progress: &v}); apperr.Status(err) != 400 {
			t.Errorf("progress %d: status = %d, want 400", progress, apperr.Status(err))
		}
	}

	ok := 60
	updated, err := svc.Update(context.Background(), p.ID, UpdateProjectRequest{Progress: &ok})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Progress != 60 {
		t.Errorf("Progress = %d, want 60", updated.Progress)
	}
}

func TestOwnedOperationsHideForeignProjects(t *testing.T) {
	svc, store := newTestService()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	p := seedProject(store, owner, StatusActive)

	if _, err := svc.GetOwned(context.Background(), owner, p.ID); err != nil {
		t.Fatalf("GetOwned as owner: %v", err)
	}

	if _, err := svc.GetOwned(context.Background(), stranger, p.ID); apperr.Status(err) != 404 {
		t.Errorf("foreign get: status = %d, want 404", apperr.Status(err))
	}
	if err := svc.DeleteOwned(context.Background(), stranger, p.ID); apperr.Status(err) != 404 {
		t.Errorf("foreign delete: status = %d, want 404", apperr.Status(err))
	}
	if _, ok := store.projects[p.ID]; !ok {
		t.Error("project deleted by non-owner")
	}

	missing := primitive.NewObjectID()
	errMissing := func() error { _, err := svc.GetOwned(context.Background(), owner, missing); return err }()
	errForeign := func() error { _, err := svc.GetOwned(context.Background(), stranger, p.ID); return err }()
	if apperr.Message(errMissing) != apperr.Message(errForeign) {
		t.Errorf("missing and foreign diverge: %q vs %q", apperr.Message(errMissing), apperr.Message(errForeign))
	}
}

func TestSubmitFundingRequest(t *testing.T) {
	svc, store := newTestService()
	owner := primitive.NewObjectID()
	p := seedProject(store, owner, StatusActive)

	request, err := svc.SubmitFundingRequest(context.Background(), owner, FundingRequestInput{
		ProjectID: p.ID.Hex(),
		Amount:    12000,
		Purpose:   "Medical supplies",
	})
	if err != nil {
		t.Fatalf("SubmitFundingRequest: %v", err)
	}
	if request.Status != FundingPending {
		t.Errorf("request.Status = %q, want pending", request.Status)
	}

	stored, _ := store.FindByID(context.Background(), p.ID)
	if len(stored.FundingRequests) != 1 {
		t.Fatalf("FundingRequests = %d, want 1", len(stored.FundingRequests))
	}
	if stored.FundingStatus != FundingPending {
		t.Errorf("project FundingStatus = %q, want pending", stored.FundingStatus)
	}

	_, err = svc.SubmitFundingRequest(context.Background(), owner, FundingRequestInput{ProjectID: p.ID.Hex(), Amount: 0})
	if apperr.Status(err) != 400 {
		t.Errorf("zero amount: status = %d, want 400", apperr.Status(err))
	}
}

func TestFundingSummary(t *testing.T) {
	svc, store := newTestService()
	owner := primitive.NewObjectID()

	a := seedProject(store, owner, StatusActive)
	a.Budget = 10000
	a.Funding = 8000
	a.FundingStatus = FundingApproved

	b := seedProject(store, owner, StatusActive)
	b.Budget = 5000
	b.FundingStatus = FundingPending

	seedProject(store, primitive.NewObjectID(), StatusActive) // someone else's

	summary, err := svc.FundingSummary(context.Background(), owner)
	if err != nil {
		t.Fatalf("FundingSummary: %v", err)
	}
	if summary.TotalRequested != 15000 {
		t.Errorf("TotalRequested = %v, want 15000", summary.TotalRequested)
	}
	if summary.TotalApproved != 8000 {
		t.Errorf("TotalApproved = %v, want 8000", summary.TotalApproved)
	}
	if summary.PendingRequests != 1 || summary.ApprovedRequests != 1 {
		t.Errorf("counts = %+v", summary)
	}
}

func TestFrontlinerSubmitReport(t *testing.T) {
	svc, store := newTestService()
	frontliner := primitive.NewObjectID()
	p := seedProject(store, primitive.NewObjectID(), StatusActive)
	p.AssignedTo = []primitive.ObjectID{frontliner}

	report, err := svc.SubmitReport(context.Background(), frontliner, p.ID, SubmitReportRequest{ReportContent: "Wells operational"})
	if err != nil {
		t.Fatalf("SubmitReport: %v", err)
	}
	if report.Status != "submitted" {
		t.Errorf("report.Status = %q", report.Status)
	}
	stored, _ := store.FindByID(context.Background(), p.ID)
	if !stored.ReportSubmitted {
		t.Error("ReportSubmitted not set")
	}

	_, err = svc.SubmitReport(context.Background(), primitive.NewObjectID(), p.ID, SubmitReportRequest{ReportContent: "x"})
	if apperr.Status(err) != 404 {
		t.Errorf("non-assignee: status = %d, want 404", apperr.Status(err))
	}
}

func TestGetForAppliesReadGate(t *testing.T) {
	svc, store := newTestService()
	owner := primitive.NewObjectID()
	p := seedProject(store, owner, StatusActive)

	if _, err := svc.GetFor(context.Background(), primitive.NewObjectID(), "Admin", p.ID); err != nil {
		t.Errorf("admin read: %v", err)
	}
	if _, err := svc.GetFor(context.Background(), owner, "PartnerNGO", p.ID); err != nil {
		t.Errorf("owner read: %v", err)
	}
	if _, err := svc.GetFor(context.Background(), primitive.NewObjectID(), "PartnerNGO", p.ID); apperr.Status(err) != 404 {
		t.Errorf("stranger read: status = %d, want 404", apperr.Status(err))
	}
}

func TestAccessDecision(t *testing.T) {
	owner := primitive.NewObjectID()
	assignee := primitive.NewObjectID()
	stranger := primitive.NewObjectID()
	p := &Project{CreatedBy: owner, AssignedTo: []primitive.ObjectID{assignee}}

	cases := []struct {
		name string
		user primitive.ObjectID
		role string
		want policy.Decision
	}{
		{"owner", owner, "PartnerNGO", policy.Allowed},
		{"assignee", assignee, "Frontliner", policy.Allowed},
		{"stranger", stranger, "PartnerNGO", policy.NotFound},
		{"admin", stranger, "Admin", policy.Allowed},
	}
	for _, tc := range cases {
		if got := AccessDecision(p, tc.user, tc.role); got != tc.want {
			t.Errorf("%s: AccessDecision = %v, want %v", tc.name, got, tc.want)
		}
	}

	if got := AccessDecision(nil, owner, "Admin"); got != policy.NotFound {
		t.Errorf("nil project: AccessDecision = %v, want NotFound", got)
	}
	if got := OwnerDecision(nil, owner); got != policy.NotFound {
		t.Errorf("nil project: OwnerDecision = %v, want NotFound", got)
	}
}
