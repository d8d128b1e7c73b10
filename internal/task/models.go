package task

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task statuses. Submitted is only ever set by the submit endpoint.
const (
	StatusPending   = "Pending"
	StatusSubmitted = "Submitted"
	StatusOverdue   = "Overdue"
	StatusCompleted = "Completed"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusSubmitted, StatusOverdue, StatusCompleted:
		return true
	}
	return false
}

// Submission records the file handed in for a task.
type Submission struct {
	FileURL        string    `bson:"file_url" json:"fileUrl"`
	SubmissionDate time.Time `bson:"submission_date" json:"submissionDate"`
}

type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Project     primitive.ObjectID `bson:"project" json:"project"`
	AssignedTo  primitive.ObjectID `bson:"assigned_to" json:"assignedTo"`
	DueDate     time.Time          `bson:"due_date" json:"dueDate"`
	Status      string             `bson:"status" json:"status"`
	Notes       string             `bson:"notes" json:"notes"`
	Submission  *Submission        `bson:"submission,omitempty" json:"submission,omitempty"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

type CreateTaskRequest struct {
	Title      string    `json:"title"`
	Project    string    `json:"project"`
	AssignedTo string    `json:"assignedTo"`
	DueDate    time.Time `json:"dueDate"`
}

// UpdateTaskRequest is a shallow merge; identity fields are not representable.
type UpdateTaskRequest struct {
	Title      *string    `json:"title"`
	AssignedTo *string    `json:"assignedTo"`
	DueDate    *time.Time `json:"dueDate"`
	Status     *string    `json:"status"`
	Notes      *string    `json:"notes"`
}

type StatusUpdateRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}
