package task

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TaskRepository handles DB operations on the tasks collection.
type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{collection: db.Collection("tasks")}
}

func (r *TaskRepository) Create(ctx context.Context, t *Task) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, t)
	return err
}

func (r *TaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Task, error) {
	var t Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]*Task, error) {
	return r.find(ctx, bson.M{"project": projectID})
}

func (r *TaskRepository) FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]*Task, error) {
	return r.find(ctx, bson.M{"assigned_to": userID})
}

func (r *TaskRepository) find(ctx context.Context, filter bson.M) ([]*Task, error) {
	opts := options.Find().SetSort(bson.M{"due_date": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var tasks []*Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) Save(ctx context.Context, t *Task) error {
	t.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// MarkOverdue flips every Pending task past its due date to Overdue in one
// write. Returns the number of tasks flipped.
func (r *TaskRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.collection.UpdateMany(ctx,
		bson.M{"status": StatusPending, "due_date": bson.M{"$lt": now}},
		bson.M{"$set": bson.M{"status": StatusOverdue, "updated_at": now}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
