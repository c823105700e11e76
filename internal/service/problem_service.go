package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/llmath/problems-api/internal/dto"
	"github.com/llmath/problems-api/internal/models"
	"github.com/llmath/problems-api/internal/repository"
)

// Sentinel errors mapped to HTTP statuses by handlers.
var (
	ErrInvalidID       = errors.New("invalid identifier")
	ErrProblemNotFound = errors.New("problem not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrNothingCreated  = errors.New("store acknowledged no created document")
)

// ProblemService exposes CRUD operations over problems.
type ProblemService interface {
	Create(ctx context.Context, payload dto.ProblemRequest) (models.Problem, error)
	Get(ctx context.Context, id string) (models.Problem, error)
	Replace(ctx context.Context, id string, payload dto.ProblemRequest) (models.Problem, error)
	Delete(ctx context.Context, id string) (string, error)
	List(ctx context.Context) ([]models.Problem, error)
}

type problemService struct {
	problems     repository.ProblemRepository
	typeBindings repository.TagRepository
	validate     *validator.Validate
	logger       zerolog.Logger
}

// NewProblemService constructs the problem service. typeBindings is the
// type-scheme repository whose bindings are cascade-deleted with a problem;
// name-scheme bindings are deliberately left untouched, matching the
// historical behavior clients rely on.
func NewProblemService(problems repository.ProblemRepository, typeBindings repository.TagRepository, validate *validator.Validate, logger zerolog.Logger) ProblemService {
	return &problemService{
		problems:     problems,
		typeBindings: typeBindings,
		validate:     validate,
		logger:       logger.With().Str("component", "problem_service").Logger(),
	}
}

func (s *problemService) Create(ctx context.Context, payload dto.ProblemRequest) (models.Problem, error) {
	if err := s.validate.Struct(payload); err != nil {
		return models.Problem{}, err
	}

	problem := problemFromRequest(payload)
	id, err := s.problems.Create(ctx, &problem)
	if err != nil {
		return models.Problem{}, fmt.Errorf("insert problem: %w", err)
	}

	created, err := s.problems.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Problem{}, ErrNothingCreated
		}
		return models.Problem{}, fmt.Errorf("read back created problem: %w", err)
	}
	return created, nil
}

func (s *problemService) Get(ctx context.Context, id string) (models.Problem, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return models.Problem{}, err
	}

	problem, err := s.problems.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Problem{}, ErrProblemNotFound
		}
		return models.Problem{}, fmt.Errorf("read problem: %w", err)
	}
	return problem, nil
}

// Replace overwrites every field except the id; the path id wins over
// whatever the body carried. A missing target is a 404, never an implicit
// create.
func (s *problemService) Replace(ctx context.Context, id string, payload dto.ProblemRequest) (models.Problem, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return models.Problem{}, err
	}

	if err := s.validate.Struct(payload); err != nil {
		return models.Problem{}, err
	}

	problem := problemFromRequest(payload)
	if err := s.problems.Replace(ctx, objectID, &problem); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Problem{}, ErrProblemNotFound
		}
		return models.Problem{}, fmt.Errorf("replace problem: %w", err)
	}

	updated, err := s.problems.GetByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Problem{}, ErrProblemNotFound
		}
		return models.Problem{}, fmt.Errorf("read back replaced problem: %w", err)
	}
	return updated, nil
}

// Delete removes the problem and bulk-deletes its type bindings. The two
// deletes are separate store calls; a failure between them is not rolled
// back.
func (s *problemService) Delete(ctx context.Context, id string) (string, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return "", err
	}

	deleted, err := s.problems.Delete(ctx, objectID)
	if err != nil {
		return "", fmt.Errorf("delete problem: %w", err)
	}
	if !deleted {
		return "", ErrProblemNotFound
	}

	removed, err := s.typeBindings.DeleteBindingsByProblem(ctx, objectID)
	if err != nil {
		return "", fmt.Errorf("delete type bindings: %w", err)
	}
	s.logger.Info().Str("problem_id", id).Int64("type_bindings_removed", removed).Msg("problem deleted")

	return fmt.Sprintf("problem '%s' was deleted", id), nil
}

func (s *problemService) List(ctx context.Context) ([]models.Problem, error) {
	problems, err := s.problems.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	return problems, nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return objectID, nil
}

func problemFromRequest(payload dto.ProblemRequest) models.Problem {
	steps := make([]models.Step, 0, len(payload.Solution.Steps))
	for _, step := range payload.Solution.Steps {
		steps = append(steps, models.Step{
			Order:         step.Order,
			Prerequisites: orEmptyMap(step.Prerequisites),
			Transition:    orEmptyMap(step.Transition),
			Outcomes:      orEmptyMap(step.Outcomes),
		})
	}

	var seed int64
	if payload.GeoAnswerKey.Seed != nil {
		seed = *payload.GeoAnswerKey.Seed
	}

	return models.Problem{
		Statement:    payload.Statement,
		Title:        payload.Title,
		GeoAnswerKey: models.GeoAnswerKey{Hash: payload.GeoAnswerKey.Hash, Seed: seed},
		Result:       payload.Result,
		Solution:     models.Solution{Steps: steps},
		LLMSolution:  payload.LLMSolution,
	}
}

func orEmptyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
