package dto

// StepPayload mirrors models.Step for inbound requests. The maps default to
// empty when omitted.
type StepPayload struct {
	Order         int                    `json:"order"`
	Prerequisites map[string]interface{} `json:"prerequisites"`
	Transition    map[string]interface{} `json:"transition"`
	Outcomes      map[string]interface{} `json:"outcomes"`
}

// SolutionPayload carries the ordered solution steps.
type SolutionPayload struct {
	Steps []StepPayload `json:"steps"`
}

// GeoAnswerKeyPayload is the required answer-key sub-object.
type GeoAnswerKeyPayload struct {
	Hash string `json:"hash" validate:"required"`
	Seed *int64 `json:"seed" validate:"required"`
}

// ProblemRequest is the payload for creating or replacing a problem. Any id
// in the body is ignored; the server generates one on create and the path
// parameter is authoritative on replace.
type ProblemRequest struct {
	Statement    string                 `json:"statement" validate:"required"`
	Title        string                 `json:"title"`
	GeoAnswerKey GeoAnswerKeyPayload    `json:"geo_answer_key" validate:"required"`
	Result       string                 `json:"result"`
	Solution     SolutionPayload        `json:"solution"`
	LLMSolution  map[string]interface{} `json:"llm_solution"`
}
