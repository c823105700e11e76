package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// GeoAnswerKey holds the precomputed answer key for a geometry problem.
// Both fields are produced together by the generator pipeline and are
// opaque to this service.
type GeoAnswerKey struct {
	Hash string `bson:"hash" json:"hash"`
	Seed int64  `bson:"seed" json:"seed"`
}

// Step is a single stage of a worked solution. The maps are free-form
// payloads; the service stores them verbatim.
type Step struct {
	Order         int                    `bson:"order" json:"order"`
	Prerequisites map[string]interface{} `bson:"prerequisites" json:"prerequisites"`
	Transition    map[string]interface{} `bson:"transition" json:"transition"`
	Outcomes      map[string]interface{} `bson:"outcomes" json:"outcomes"`
}

// Solution is an ordered sequence of steps. Step order is preserved exactly
// as submitted; no reordering or uniqueness checks on Step.Order.
type Solution struct {
	Steps []Step `bson:"steps" json:"steps"`
}

// Problem is a math-problem document stored in the problems collection.
type Problem struct {
	ID           primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Statement    string                 `bson:"statement" json:"statement"`
	Title        string                 `bson:"title,omitempty" json:"title,omitempty"`
	GeoAnswerKey GeoAnswerKey           `bson:"geo_answer_key" json:"geo_answer_key"`
	Result       string                 `bson:"result" json:"result"`
	Solution     Solution               `bson:"solution" json:"solution"`
	LLMSolution  map[string]interface{} `bson:"llm_solution,omitempty" json:"llm_solution,omitempty"`
}
