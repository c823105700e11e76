package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/llmath/problems-api/internal/models"
)

// TagRepository defines persistence operations for one tagging scheme: a tag
// collection plus its binding collection. The scheme-specific document field
// names (e.g. "type_name"/"type_id" vs "name"/"name_id") are fixed at
// construction, so both schemes share one implementation.
type TagRepository interface {
	FindByValue(ctx context.Context, value string) (models.Tag, error)
	GetOrCreate(ctx context.Context, value string) (models.Tag, error)
	ListValues(ctx context.Context) ([]string, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	BindingExists(ctx context.Context, tagID, problemID primitive.ObjectID) (bool, error)
	InsertBinding(ctx context.Context, tagID, problemID primitive.ObjectID) error
	BindingsByTag(ctx context.Context, tagID primitive.ObjectID) ([]models.Binding, error)
	ListBindings(ctx context.Context) ([]models.Binding, error)
	DeleteBindingsByProblem(ctx context.Context, problemID primitive.ObjectID) (int64, error)
}

type tagRepository struct {
	tags       *mongo.Collection
	bindings   *mongo.Collection
	valueField string
	refField   string
}

// NewTagRepository instantiates a Mongo-backed repository for one scheme.
// valueField names the tag's label field, refField names the binding's
// tag-reference field.
func NewTagRepository(tags, bindings *mongo.Collection, valueField, refField string) TagRepository {
	return &tagRepository{
		tags:       tags,
		bindings:   bindings,
		valueField: valueField,
		refField:   refField,
	}
}

func (r *tagRepository) FindByValue(ctx context.Context, value string) (models.Tag, error) {
	var doc bson.M
	if err := r.tags.FindOne(ctx, bson.M{r.valueField: value}).Decode(&doc); err != nil {
		return models.Tag{}, err
	}
	return r.tagFromDoc(doc), nil
}

// GetOrCreate resolves the tag for value, inserting it when absent. The
// upsert makes find-or-insert a single store round trip, so two concurrent
// first-uses of the same value resolve to the same tag document.
func (r *tagRepository) GetOrCreate(ctx context.Context, value string) (models.Tag, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc bson.M
	err := r.tags.FindOneAndUpdate(ctx,
		bson.M{r.valueField: value},
		bson.M{"$setOnInsert": bson.M{r.valueField: value}},
		opts,
	).Decode(&doc)
	if err != nil {
		return models.Tag{}, err
	}
	return r.tagFromDoc(doc), nil
}

func (r *tagRepository) ListValues(ctx context.Context) ([]string, error) {
	tags, err := r.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(tags))
	for _, tag := range tags {
		values = append(values, tag.Value)
	}
	return values, nil
}

func (r *tagRepository) ListTags(ctx context.Context) ([]models.Tag, error) {
	cursor, err := r.tags.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tags := make([]models.Tag, 0, len(docs))
	for _, doc := range docs {
		tags = append(tags, r.tagFromDoc(doc))
	}
	return tags, nil
}

func (r *tagRepository) BindingExists(ctx context.Context, tagID, problemID primitive.ObjectID) (bool, error) {
	filter := bson.M{r.refField: tagID, "problem_id": problemID}
	err := r.bindings.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *tagRepository) InsertBinding(ctx context.Context, tagID, problemID primitive.ObjectID) error {
	_, err := r.bindings.InsertOne(ctx, bson.M{r.refField: tagID, "problem_id": problemID})
	return err
}

func (r *tagRepository) BindingsByTag(ctx context.Context, tagID primitive.ObjectID) ([]models.Binding, error) {
	return r.findBindings(ctx, bson.M{r.refField: tagID})
}

func (r *tagRepository) ListBindings(ctx context.Context) ([]models.Binding, error) {
	return r.findBindings(ctx, bson.M{})
}

func (r *tagRepository) DeleteBindingsByProblem(ctx context.Context, problemID primitive.ObjectID) (int64, error) {
	result, err := r.bindings.DeleteMany(ctx, bson.M{"problem_id": problemID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *tagRepository) findBindings(ctx context.Context, filter bson.M) ([]models.Binding, error) {
	cursor, err := r.bindings.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	bindings := make([]models.Binding, 0, len(docs))
	for _, doc := range docs {
		binding := models.Binding{}
		if id, ok := doc["_id"].(primitive.ObjectID); ok {
			binding.ID = id
		}
		if tagID, ok := doc[r.refField].(primitive.ObjectID); ok {
			binding.TagID = tagID
		}
		if problemID, ok := doc["problem_id"].(primitive.ObjectID); ok {
			binding.ProblemID = problemID
		}
		bindings = append(bindings, binding)
	}
	return bindings, nil
}

func (r *tagRepository) tagFromDoc(doc bson.M) models.Tag {
	tag := models.Tag{}
	if id, ok := doc["_id"].(primitive.ObjectID); ok {
		tag.ID = id
	}
	if value, ok := doc[r.valueField].(string); ok {
		tag.Value = value
	}
	return tag
}
