package task

import (
	"context"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"NGOConnect/internal/apperr"
	"NGOConnect/internal/policy"
)

// TaskStore is the slice of TaskRepository the service needs.
type TaskStore interface {
	Create(ctx context.Context, t *Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Task, error)
	FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]*Task, error)
	FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]*Task, error)
	Save(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// AssigneeDecision gates operations reserved for the task's assignee. A
// mismatch reads as not-found, never as forbidden.
func AssigneeDecision(t *Task, userID primitive.ObjectID) policy.Decision {
	if t == nil {
		return policy.NotFound
	}
	if t.AssignedTo == userID {
		return policy.Allowed
	}
	return policy.NotFound
}

type TaskService struct {
	store  TaskStore
	files  FileStore
	logger *zap.Logger
}

func NewTaskService(repo *TaskRepository, files *LocalStorage, logger *zap.Logger) *TaskService {
	return &TaskService{store: repo, files: files, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	if req.Title == "" || req.Project == "" || req.AssignedTo == "" || req.DueDate.IsZero() {
		return nil, apperr.BadRequest("All fields are required")
	}
	projectID, err := primitive.ObjectIDFromHex(req.Project)
	if err != nil {
		return nil, apperr.BadRequest("Invalid project id")
	}
	assigneeID, err := primitive.ObjectIDFromHex(req.AssignedTo)
	if err != nil {
		return nil, apperr.BadRequest("Invalid assignee id")
	}

	t := &Task{
		ID:         primitive.NewObjectID(),
		Title:      req.Title,
		Project:    projectID,
		AssignedTo: assigneeID,
		DueDate:    req.DueDate,
		Status:     StatusPending,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]*Task, error) {
	return s.store.FindByProject(ctx, projectID)
}

func (s *TaskService) ListByAssignee(ctx context.Context, userID primitive.ObjectID) ([]*Task, error) {
	return s.store.FindByAssignee(ctx, userID)
}

func (s *TaskService) get(ctx context.Context, id primitive.ObjectID) (*Task, error) {
	t, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperr.NotFound("Task not found")
	}
	return t, nil
}

func (s *TaskService) Update(ctx context.Context, id primitive.ObjectID, req UpdateTaskRequest) (*Task, error) {
	t, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.AssignedTo != nil {
		assigneeID, err := primitive.ObjectIDFromHex(*req.AssignedTo)
		if err != nil {
			return nil, apperr.BadRequest("Invalid assignee id")
		}
		t.AssignedTo = assigneeID
	}
	if req.DueDate != nil {
		t.DueDate = *req.DueDate
	}
	if req.Status != nil {
		if err := t.setStatus(*req.Status); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}

	if err := s.store.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// setStatus enforces the task state machine: Submitted is reachable only
// through Submit, and Completed stamps its timestamp.
func (t *Task) setStatus(status string) error {
	if !ValidStatus(status) {
		return apperr.BadRequest("Invalid task status")
	}
	if status == StatusSubmitted {
		return apperr.BadRequest("Tasks are marked Submitted through the submit endpoint")
	}
	t.Status = status
	if status == StatusCompleted {
		now := time.Now()
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	return nil
}

func (s *TaskService) Delete(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFound("Task not found")
	}
	return nil
}

// UpdateOwnStatus lets the assignee move their task through the state
// machine; anyone else sees not-found.
func (s *TaskService) UpdateOwnStatus(ctx context.Context, userID, id primitive.ObjectID, req StatusUpdateRequest) (*Task, error) {
	t, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if AssigneeDecision(t, userID) != policy.Allowed {
		return nil, apperr.NotFound("Task not found")
	}

	if err := t.setStatus(req.Status); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}

	if err := s.store.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Submit stores the assignee's file and moves the task to Submitted,
// stamping the submission metadata. This is the only path to Submitted.
func (s *TaskService) Submit(ctx context.Context, userID, id primitive.ObjectID, filename, contentType string, size int64, src io.Reader) (*Task, error) {
	if size > MaxUploadSize {
		return nil, apperr.BadRequest("File too large. Maximum size is 10MB.")
	}
	if contentType != "application/pdf" {
		return nil, apperr.BadRequest("Only PDF files are allowed")
	}

	t, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if AssigneeDecision(t, userID) != policy.Allowed {
		return nil, apperr.NotFound("Task not found")
	}

	fileURL, err := s.files.Save(filename, src)
	if err != nil {
		s.logger.Error("failed to store submission", zap.String("task", id.Hex()), zap.Error(err))
		return nil, err
	}

	t.Status = StatusSubmitted
	t.Submission = &Submission{FileURL: fileURL, SubmissionDate: time.Now()}

	if err := s.store.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// SweepOverdue is the scheduler entry point.
func (s *TaskService) SweepOverdue(ctx context.Context) {
	flipped, err := s.store.MarkOverdue(ctx, time.Now())
	if err != nil {
		s.logger.Error("overdue sweep failed", zap.Error(err))
		return
	}
	if flipped > 0 {
		s.logger.Info("tasks marked overdue", zap.Int64("count", flipped))
	}
}
