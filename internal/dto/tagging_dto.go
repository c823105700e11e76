package dto

// AssignTypeRequest binds a type label to an existing problem.
type AssignTypeRequest struct {
	TypeName  string `json:"type_name" validate:"required"`
	ProblemID string `json:"problem_id" validate:"required"`
}

// AssignNameRequest binds a name label to an existing problem. Historical
// endpoint; kept for clients of the first API revision.
type AssignNameRequest struct {
	Name      string `json:"name" validate:"required"`
	ProblemID string `json:"problem_id" validate:"required"`
}
