package dashboard

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"NGOConnect/internal/apperr"
	"NGOConnect/internal/auth"
	"NGOConnect/internal/project"
	"NGOConnect/internal/task"
)

type fakeUserStats struct {
	byRole map[string][]*auth.User
}

func (f *fakeUserStats) CountActiveByRole(_ context.Context, role string) (int64, error) {
	return int64(len(f.byRole[role])), nil
}

func (f *fakeUserStats) CountActive(_ context.Context) (int64, error) {
	var n int64
	for _, users := range f.byRole {
		n += int64(len(users))
	}
	return n, nil
}

func (f *fakeUserStats) FindActiveByRole(_ context.Context, role string, limit int64) ([]*auth.User, error) {
	users := f.byRole[role]
	if limit > 0 && int64(len(users)) > limit {
		users = users[:limit]
	}
	return users, nil
}

type fakeProjectStats struct {
	owned    []*project.Project
	assigned []*project.Project
}

func (f *fakeProjectStats) FindByOwner(_ context.Context, _ primitive.ObjectID) ([]*project.Project, error) {
	return f.owned, nil
}

func (f *fakeProjectStats) FindByAssignee(_ context.Context, _ primitive.ObjectID) ([]*project.Project, error) {
	return f.assigned, nil
}

type fakeTaskStats struct {
	tasks []*task.Task
}

func (f *fakeTaskStats) FindByAssignee(_ context.Context, _ primitive.ObjectID) ([]*task.Task, error) {
	return f.tasks, nil
}

func testUser(role string) *auth.User {
	return &auth.User{ID: primitive.NewObjectID(), Name: "U", Role: role, IsActive: true, IsVerified: true}
}

func TestAdminDashboard(t *testing.T) {
	admin := testUser(auth.RoleAdmin)
	admin.AdminSettings = &auth.AdminSettings{ProjectNotificationCount: 7, NotificationsEnabled: true}

	users := &fakeUserStats{byRole: map[string][]*auth.User{
		auth.RoleAdmin:      {admin},
		auth.RolePartnerNGO: {testUser(auth.RolePartnerNGO), testUser(auth.RolePartnerNGO)},
		auth.RoleFrontliner: {testUser(auth.RoleFrontliner)},
	}}
	svc := &DashboardService{users: users, logger: zap.NewNop()}

	d, err := svc.Admin(context.Background(), admin, admin.ID.Hex())
	if err != nil {
		t.Fatalf("Admin: %v", err)
	}
	if d.Stats.TotalUsers != 4 || d.Stats.NGOCount != 2 || d.Stats.FrontlinerCount != 1 {
		t.Errorf("Stats = %+v", d.Stats)
	}
	if len(d.RecentNGOs) != 2 || len(d.RecentFrontliners) != 1 {
		t.Errorf("recents = %d NGOs, %d frontliners", len(d.RecentNGOs), len(d.RecentFrontliners))
	}
	if d.AdminSettings == nil || d.AdminSettings.ProjectNotificationCount != 7 {
		t.Errorf("AdminSettings = %+v", d.AdminSettings)
	}
}

func TestAdminDashboardForeignUserID(t *testing.T) {
	admin := testUser(auth.RoleAdmin)
	svc := &DashboardService{users: &fakeUserStats{byRole: map[string][]*auth.User{}}, logger: zap.NewNop()}

	_, err := svc.Admin(context.Background(), admin, primitive.NewObjectID().Hex())
	if apperr.Status(err) != 403 {
		t.Fatalf("status = %d, want 403", apperr.Status(err))
	}
}

func TestNGODashboard(t *testing.T) {
	ngo := testUser(auth.RolePartnerNGO)
	projects := []*project.Project{
		{Status: project.StatusActive, Funding: 5000, FundingStatus: project.FundingApproved},
		{Status: project.StatusCompleted, Funding: 3000, FundingStatus: project.FundingDisbursed},
		{Status: project.StatusCompleted, Funding: 2000, FundingStatus: project.FundingPending},
		{Status: project.StatusPending},
	}
	svc := &DashboardService{projects: &fakeProjectStats{owned: projects}, logger: zap.NewNop()}

	d, err := svc.NGO(context.Background(), ngo, ngo.ID.Hex())
	if err != nil {
		t.Fatalf("NGO: %v", err)
	}
	if d.TotalProjects != 4 || d.ActiveProjects != 1 || d.CompletedProjects != 2 || d.PendingProjects != 1 {
		t.Errorf("counts = %+v", d)
	}
	if d.TotalFunding != 10000 || d.PendingFunding != 2000 {
		t.Errorf("funding = total %v, pending %v", d.TotalFunding, d.PendingFunding)
	}
	if d.PerformanceMetrics.CompletionRate != 50 {
		t.Errorf("CompletionRate = %v, want 50", d.PerformanceMetrics.CompletionRate)
	}
	if d.PerformanceMetrics.FundingUtilization != 80 {
		t.Errorf("FundingUtilization = %v, want 80", d.PerformanceMetrics.FundingUtilization)
	}
}

func TestNGODashboardEmpty(t *testing.T) {
	ngo := testUser(auth.RolePartnerNGO)
	svc := &DashboardService{projects: &fakeProjectStats{}, logger: zap.NewNop()}

	d, err := svc.NGO(context.Background(), ngo, ngo.ID.Hex())
	if err != nil {
		t.Fatalf("NGO: %v", err)
	}
	if d.PerformanceMetrics.CompletionRate != 0 || d.PerformanceMetrics.FundingUtilization != 0 {
		t.Errorf("metrics on empty portfolio = %+v", d.PerformanceMetrics)
	}
}

func TestFrontlinerDashboard(t *testing.T) {
	fl := testUser(auth.RoleFrontliner)
	projects := []*project.Project{
		{Status: project.StatusActive},
		{Status: project.StatusCompleted, ReportSubmitted: false},
		{Status: project.StatusCompleted, ReportSubmitted: true},
	}
	tasks := []*task.Task{
		{Status: task.StatusPending},
		{Status: task.StatusPending},
		{Status: task.StatusOverdue},
		{Status: task.StatusCompleted},
	}
	svc := &DashboardService{
		projects: &fakeProjectStats{assigned: projects},
		tasks:    &fakeTaskStats{tasks: tasks},
		logger:   zap.NewNop(),
	}

	d, err := svc.Frontliner(context.Background(), fl, fl.ID.Hex())
	if err != nil {
		t.Fatalf("Frontliner: %v", err)
	}
	if d.AssignedProjectsCount != 1 {
		t.Errorf("AssignedProjectsCount = %d, want 1", d.AssignedProjectsCount)
	}
	if d.PendingReportsCount != 1 {
		t.Errorf("PendingReportsCount = %d, want 1", d.PendingReportsCount)
	}
	if d.TaskCounts.Pending != 2 || d.TaskCounts.Overdue != 1 || d.TaskCounts.Completed != 1 {
		t.Errorf("TaskCounts = %+v", d.TaskCounts)
	}
	if d.PerformanceMetrics.CompletionRate != 25 {
		t.Errorf("CompletionRate = %v, want 25", d.PerformanceMetrics.CompletionRate)
	}
	if d.PerformanceMetrics.ProjectsCompleted != 2 {
		t.Errorf("ProjectsCompleted = %d, want 2", d.PerformanceMetrics.ProjectsCompleted)
	}
}

func TestDashboardsRejectForeignUserID(t *testing.T) {
	svc := &DashboardService{
		projects: &fakeProjectStats{},
		tasks:    &fakeTaskStats{},
		logger:   zap.NewNop(),
	}

	ngo := testUser(auth.RolePartnerNGO)
	if _, err := svc.NGO(context.Background(), ngo, primitive.NewObjectID().Hex()); apperr.Status(err) != 403 {
		t.Errorf("NGO: status = %d, want 403", apperr.Status(err))
	}

	fl := testUser(auth.RoleFrontliner)
	if _, err := svc.Frontliner(context.Background(), fl, primitive.NewObjectID().Hex()); apperr.Status(err) != 403 {
		t.Errorf("Frontliner: status = %d, want 403", apperr.Status(err))
	}
}
