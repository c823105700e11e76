package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/llmath/problems-api/internal/models"
	"github.com/llmath/problems-api/internal/repository"
)

// SchemePolicy captures the behavioral differences between the two tagging
// schemes. Both schemes shipped with divergent semantics and clients depend
// on them, so the divergences are explicit flags rather than unified away.
type SchemePolicy struct {
	// Label names the scheme in confirmation messages and debug output
	// ("type" or "name").
	Label string
	// ValueField is the tag document's label field.
	ValueField string
	// GuardDuplicateBindings short-circuits Assign when the (tag, problem)
	// pair is already bound. Only the type scheme guards; name bindings
	// may accumulate duplicates.
	GuardDuplicateBindings bool
	// EmptyOnUnknownTag makes queries for an unseen tag value return an
	// empty list instead of failing. The name scheme fails with not-found.
	EmptyOnUnknownTag bool
}

// TypeScheme is the current tagging scheme.
var TypeScheme = SchemePolicy{
	Label:                  "type",
	ValueField:             "type_name",
	GuardDuplicateBindings: true,
	EmptyOnUnknownTag:      true,
}

// NameScheme is the historical tagging scheme, kept for compatibility.
var NameScheme = SchemePolicy{
	Label:                  "name",
	ValueField:             "name",
	GuardDuplicateBindings: false,
	EmptyOnUnknownTag:      false,
}

// TaggingService binds tags to problems and resolves problems by tag value.
// One implementation serves both schemes, parameterized by SchemePolicy.
type TaggingService interface {
	Assign(ctx context.Context, tagValue, problemID string) (string, error)
	ProblemsByTag(ctx context.Context, tagValue string) ([]models.Problem, error)
	ListValues(ctx context.Context) ([]string, error)
	ListTagsWithIDs(ctx context.Context) ([]string, error)
	ListBindings(ctx context.Context) ([]string, error)
}

type taggingService struct {
	policy   SchemePolicy
	tags     repository.TagRepository
	problems repository.ProblemRepository
	logger   zerolog.Logger
}

// NewTaggingService constructs a tagging service for one scheme.
func NewTaggingService(policy SchemePolicy, tags repository.TagRepository, problems repository.ProblemRepository, logger zerolog.Logger) TaggingService {
	return &taggingService{
		policy:   policy,
		tags:     tags,
		problems: problems,
		logger:   logger.With().Str("component", policy.Label+"_tagging_service").Logger(),
	}
}

// Assign verifies the problem exists, resolves the tag (creating it on first
// use), and records the binding. The steps are separate store calls with no
// transaction around them.
func (s *taggingService) Assign(ctx context.Context, tagValue, problemID string) (string, error) {
	objectID, err := parseObjectID(problemID)
	if err != nil {
		return "", err
	}

	if _, err := s.problems.GetByID(ctx, objectID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrProblemNotFound
		}
		return "", fmt.Errorf("read problem: %w", err)
	}

	tag, err := s.tags.GetOrCreate(ctx, tagValue)
	if err != nil {
		return "", fmt.Errorf("resolve %s tag: %w", s.policy.Label, err)
	}

	if s.policy.GuardDuplicateBindings {
		bound, err := s.tags.BindingExists(ctx, tag.ID, objectID)
		if err != nil {
			return "", fmt.Errorf("check existing binding: %w", err)
		}
		if bound {
			return fmt.Sprintf("problem '%s' already has %s '%s'", problemID, s.policy.Label, tagValue), nil
		}
	}

	if err := s.tags.InsertBinding(ctx, tag.ID, objectID); err != nil {
		return "", fmt.Errorf("insert binding: %w", err)
	}

	return fmt.Sprintf("problem '%s' was assigned %s '%s'", problemID, s.policy.Label, tagValue), nil
}

// ProblemsByTag resolves every binding of the tag to its problem. Bindings
// whose problem has since been deleted are skipped with a warning; the
// request itself still succeeds.
func (s *taggingService) ProblemsByTag(ctx context.Context, tagValue string) ([]models.Problem, error) {
	tag, err := s.tags.FindByValue(ctx, tagValue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			if s.policy.EmptyOnUnknownTag {
				return []models.Problem{}, nil
			}
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("find %s tag: %w", s.policy.Label, err)
	}

	bindings, err := s.tags.BindingsByTag(ctx, tag.ID)
	if err != nil {
		return nil, fmt.Errorf("list bindings: %w", err)
	}

	problems := make([]models.Problem, 0, len(bindings))
	for _, binding := range bindings {
		problem, err := s.problems.GetByID(ctx, binding.ProblemID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				s.logger.Warn().
					Str("problem_id", binding.ProblemID.Hex()).
					Str(s.policy.Label, tagValue).
					Msg("binding references a deleted problem, skipping")
				continue
			}
			return nil, fmt.Errorf("resolve bound problem: %w", err)
		}
		problems = append(problems, problem)
	}
	return problems, nil
}

func (s *taggingService) ListValues(ctx context.Context) ([]string, error) {
	values, err := s.tags.ListValues(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s values: %w", s.policy.Label, err)
	}
	return values, nil
}

// ListTagsWithIDs renders every tag document as a string. Debug only.
func (s *taggingService) ListTagsWithIDs(ctx context.Context) ([]string, error) {
	tags, err := s.tags.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s tags: %w", s.policy.Label, err)
	}

	rendered := make([]string, 0, len(tags))
	for _, tag := range tags {
		rendered = append(rendered, fmt.Sprintf("_id=%s %s=%s", tag.ID.Hex(), s.policy.ValueField, tag.Value))
	}
	return rendered, nil
}

// ListBindings renders every binding document as a string. Debug only.
func (s *taggingService) ListBindings(ctx context.Context) ([]string, error) {
	bindings, err := s.tags.ListBindings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bindings: %w", err)
	}

	rendered := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		rendered = append(rendered, fmt.Sprintf("%s_id=%s problem_id=%s", s.policy.Label, binding.TagID.Hex(), binding.ProblemID.Hex()))
	}
	return rendered, nil
}
