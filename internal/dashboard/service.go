package dashboard

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"NGOConnect/internal/apperr"
	"NGOConnect/internal/auth"
	"NGOConnect/internal/policy"
	"NGOConnect/internal/project"
	"NGOConnect/internal/task"
)

// The aggregators run a small fixed battery of queries per call and shape
// one summary object. Nothing is cached; every call recomputes from scratch.

type UserStats interface {
	CountActiveByRole(ctx context.Context, role string) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	FindActiveByRole(ctx context.Context, role string, limit int64) ([]*auth.User, error)
}

type ProjectStats interface {
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*project.Project, error)
	FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]*project.Project, error)
}

type TaskStats interface {
	FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]*task.Task, error)
}

type DashboardService struct {
	users    UserStats
	projects ProjectStats
	tasks    TaskStats
	logger   *zap.Logger
}

func NewDashboardService(users *auth.UserRepository, projects *project.ProjectRepository, tasks *task.TaskRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{users: users, projects: projects, tasks: tasks, logger: logger}
}

const recentLimit = 5

type AdminStats struct {
	TotalUsers      int64 `json:"totalUsers"`
	NGOCount        int64 `json:"ngoCount"`
	FrontlinerCount int64 `json:"frontlinerCount"`
}

type AdminDashboard struct {
	Stats             AdminStats          `json:"stats"`
	RecentNGOs        []auth.Identity     `json:"recentNGOs"`
	RecentFrontliners []auth.Identity     `json:"recentFrontliners"`
	AdminSettings     *auth.AdminSettings `json:"adminSettings"`
}

// Admin builds the cross-tenant summary. Admins only ever see their own
// dashboard route; a mismatched userId is a 403.
func (s *DashboardService) Admin(ctx context.Context, caller *auth.User, targetID string) (*AdminDashboard, error) {
	if policy.SelfOnly(caller.ID.Hex(), targetID) != policy.Allowed {
		return nil, apperr.Forbidden("You can only access your own dashboard.")
	}

	ngoCount, err := s.users.CountActiveByRole(ctx, auth.RolePartnerNGO)
	if err != nil {
		return nil, err
	}
	frontlinerCount, err := s.users.CountActiveByRole(ctx, auth.RoleFrontliner)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	recentNGOs, err := s.users.FindActiveByRole(ctx, auth.RolePartnerNGO, recentLimit)
	if err != nil {
		return nil, err
	}
	recentFrontliners, err := s.users.FindActiveByRole(ctx, auth.RoleFrontliner, recentLimit)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		Stats: AdminStats{
			TotalUsers:      totalUsers,
			NGOCount:        ngoCount,
			FrontlinerCount: frontlinerCount,
		},
		RecentNGOs:        toIdentities(recentNGOs),
		RecentFrontliners: toIdentities(recentFrontliners),
		AdminSettings:     caller.AdminSettings,
	}, nil
}

func toIdentities(users []*auth.User) []auth.Identity {
	out := make([]auth.Identity, 0, len(users))
	for _, u := range users {
		out = append(out, u.Identity())
	}
	return out
}

type NGOMetrics struct {
	CompletionRate     float64 `json:"completionRate"`
	FundingUtilization float64 `json:"fundingUtilization"`
}

type NGODashboard struct {
	TotalProjects      int                `json:"totalProjects"`
	ActiveProjects     int                `json:"activeProjects"`
	CompletedProjects  int                `json:"completedProjects"`
	PendingProjects    int                `json:"pendingProjects"`
	TotalFunding       float64            `json:"totalFunding"`
	PendingFunding     float64            `json:"pendingFunding"`
	RecentProjects     []*project.Project `json:"recentProjects"`
	PerformanceMetrics NGOMetrics         `json:"performanceMetrics"`
}

func (s *DashboardService) NGO(ctx context.Context, caller *auth.User, targetID string) (*NGODashboard, error) {
	if policy.SelfOnly(caller.ID.Hex(), targetID) != policy.Allowed {
		return nil, apperr.Forbidden("Access denied")
	}

	projects, err := s.projects.FindByOwner(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	d := &NGODashboard{TotalProjects: len(projects), RecentProjects: projects}
	for _, p := range projects {
		switch p.Status {
		case project.StatusActive:
			d.ActiveProjects++
		case project.StatusCompleted:
			d.CompletedProjects++
		case project.StatusPending:
			d.PendingProjects++
		}
		d.TotalFunding += p.Funding
		if p.FundingStatus == project.FundingPending {
			d.PendingFunding += p.Funding
		}
	}
	if len(projects) > recentLimit {
		d.RecentProjects = projects[:recentLimit]
	}
	if d.TotalProjects > 0 {
		d.PerformanceMetrics.CompletionRate = float64(d.CompletedProjects) / float64(d.TotalProjects) * 100
	}
	if d.TotalFunding > 0 {
		d.PerformanceMetrics.FundingUtilization = (d.TotalFunding - d.PendingFunding) / d.TotalFunding * 100
	}
	return d, nil
}

type TaskCounts struct {
	Pending   int `json:"pending"`
	Submitted int `json:"submitted"`
	Overdue   int `json:"overdue"`
	Completed int `json:"completed"`
}

type FrontlinerMetrics struct {
	CompletionRate    float64 `json:"completionRate"`
	ProjectsCompleted int     `json:"projectsCompleted"`
}

type FrontlinerDashboard struct {
	AssignedProjectsCount int               `json:"assignedProjectsCount"`
	TaskCounts            TaskCounts        `json:"taskCounts"`
	PendingReportsCount   int               `json:"pendingReportsCount"`
	PerformanceMetrics    FrontlinerMetrics `json:"performanceMetrics"`
}

func (s *DashboardService) Frontliner(ctx context.Context, caller *auth.User, targetID string) (*FrontlinerDashboard, error) {
	if policy.SelfOnly(caller.ID.Hex(), targetID) != policy.Allowed {
		return nil, apperr.Forbidden("Access denied")
	}

	projects, err := s.projects.FindByAssignee(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.FindByAssignee(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	d := &FrontlinerDashboard{}
	for _, p := range projects {
		switch p.Status {
		case project.StatusActive, project.StatusPending:
			d.AssignedProjectsCount++
		case project.StatusCompleted:
			d.PerformanceMetrics.ProjectsCompleted++
			if !p.ReportSubmitted {
				d.PendingReportsCount++
			}
		}
	}
	for _, t := range tasks {
		switch t.Status {
		case task.StatusPending:
			d.TaskCounts.Pending++
		case task.StatusSubmitted:
			d.TaskCounts.Submitted++
		case task.StatusOverdue:
			d.TaskCounts.Overdue++
		case task.StatusCompleted:
			d.TaskCounts.Completed++
		}
	}
	if len(tasks) > 0 {
		d.PerformanceMetrics.CompletionRate = float64(d.TaskCounts.Completed) / float64(len(tasks)) * 100
	}
	return d, nil
}
