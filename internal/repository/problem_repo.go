package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/llmath/problems-api/internal/models"
)

// maxProblemList caps the unpaginated listing endpoint.
const maxProblemList = 1000

// ProblemRepository defines persistence operations for problems.
type ProblemRepository interface {
	Create(ctx context.Context, problem *models.Problem) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Problem, error)
	Replace(ctx context.Context, id primitive.ObjectID, problem *models.Problem) error
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	List(ctx context.Context) ([]models.Problem, error)
}

type problemRepository struct {
	collection *mongo.Collection
}

// NewProblemRepository instantiates a Mongo-backed repository.
func NewProblemRepository(collection *mongo.Collection) ProblemRepository {
	return &problemRepository{collection: collection}
}

func (r *problemRepository) Create(ctx context.Context, problem *models.Problem) (primitive.ObjectID, error) {
	problem.ID = primitive.NewObjectID()
	result, err := r.collection.InsertOne(ctx, problem)
	if err != nil {
		return primitive.NilObjectID, err
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, mongo.ErrNoDocuments
	}
	return id, nil
}

func (r *problemRepository) GetByID(ctx context.Context, id primitive.ObjectID) (models.Problem, error) {
	var problem models.Problem
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&problem); err != nil {
		return models.Problem{}, err
	}
	return problem, nil
}

func (r *problemRepository) Replace(ctx context.Context, id primitive.ObjectID, problem *models.Problem) error {
	problem.ID = id
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, problem)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *problemRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *problemRepository) List(ctx context.Context) ([]models.Problem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetLimit(maxProblemList))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	problems := make([]models.Problem, 0)
	if err := cursor.All(ctx, &problems); err != nil {
		return nil, err
	}
	return problems, nil
}
