package project

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectRepository handles DB operations on the projects collection.
type ProjectRepository struct {
	collection *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{collection: db.Collection("projects")}
}

func (r *ProjectRepository) Create(ctx context.Context, p *Project) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, p)
	return err
}

func (r *ProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Project, error) {
	var p Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) FindAll(ctx context.Context) ([]*Project, error) {
	return r.find(ctx, bson.M{})
}

// FindByOwner lists projects created by the given NGO, newest first.
func (r *ProjectRepository) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*Project, error) {
	return r.find(ctx, bson.M{"created_by": ownerID})
}

// FindByAssignee lists projects the given frontliner is assigned to.
func (r *ProjectRepository) FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]*Project, error) {
	return r.find(ctx, bson.M{"assigned_to": userID})
}

func (r *ProjectRepository) find(ctx context.Context, filter bson.M) ([]*Project, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var projects []*Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Save replaces the stored document with the in-memory one. Writes are
// single-document and last-writer-wins.
func (r *ProjectRepository) Save(ctx context.Context, p *Project) error {
	p.UpdatedAt = time.Now()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	return err
}

// Delete removes the project unconditionally; dependent tasks are not
// cascaded. Returns false when nothing matched.
func (r *ProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
