package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tag is a label document created lazily on first use. The same shape backs
// both tagging schemes; only the collection and the value field differ
// ("name" for the historical scheme, "type_name" for the current one).
// Tags are never updated or deleted.
type Tag struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Value string             `bson:"-" json:"value"`
}

// Binding joins a tag to a problem. The tag-id field name is scheme-specific
// ("name_id" or "type_id"), so repositories map it explicitly instead of
// relying on struct tags.
type Binding struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TagID     primitive.ObjectID `bson:"-" json:"tag_id"`
	ProblemID primitive.ObjectID `bson:"problem_id" json:"problem_id"`
}
