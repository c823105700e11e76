package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedProblem(t *testing.T, problems *problemRepoStub) primitive.ObjectID {
	t.Helper()
	svc := newProblemService(problems, newTagRepoStub())
	created, err := svc.Create(context.Background(), validProblemRequest())
	require.NoError(t, err)
	return created.ID
}

func TestTaggingServiceAssignCreatesTagAndBinding(t *testing.T) {
	problems := newProblemRepoStub()
	tags := newTagRepoStub()
	svc := NewTaggingService(TypeScheme, tags, problems, testLogger())

	problemID := seedProblem(t, problems)

	confirmation, err := svc.Assign(context.Background(), "arithmetic", problemID.Hex())
	require.NoError(t, err)
	require.Contains(t, confirmation, problemID.Hex())
	require.Contains(t, confirmation, "arithmetic")

	bindings, err := tags.ListBindings(context.Background())
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	require.Equal(t, problemID, bindings[0].ProblemID)
}

func TestTaggingServiceAssignErrors(t *testing.T) {
	svc := NewTaggingService(TypeScheme, newTagRepoStub(), newProblemRepoStub(), testLogger())

	_, err := svc.Assign(context.Background(), "arithmetic", "not-an-id")
	require.ErrorIs(t, err, ErrInvalidID)

	_, err = svc.Assign(context.Background(), "arithmetic", primitive.NewObjectID().Hex())
	require.ErrorIs(t, err, ErrProblemNotFound)
}

func TestTaggingServiceTypeSchemeGuardsDuplicateBindings(t *testing.T) {
	problems := newProblemRepoStub()
	tags := newTagRepoStub()
	svc := NewTaggingService(TypeScheme, tags, problems, testLogger())

	problemID := seedProblem(t, problems)

	_, err := svc.Assign(context.Background(), "arithmetic", problemID.Hex())
	require.NoError(t, err)

	confirmation, err := svc.Assign(context.Background(), "arithmetic", problemID.Hex())
	require.NoError(t, err)
	require.Contains(t, confirmation, "already")

	bindings, err := tags.ListBindings(context.Background())
	require.NoError(t, err)
	require.Len(t, bindings, 1, "second assign must not add a binding")
}

func TestTaggingServiceNameSchemeAccumulatesDuplicates(t *testing.T) {
	problems := newProblemRepoStub()
	tags := newTagRepoStub()
	svc := NewTaggingService(NameScheme, tags, problems, testLogger())

	problemID := seedProblem(t, problems)

	_, err := svc.Assign(context.Background(), "pythagoras", problemID.Hex())
	require.NoError(t, err)
	_, err = svc.Assign(context.Background(), "pythagoras", problemID.Hex())
	require.NoError(t, err)

	bindings, err := tags.ListBindings(context.Background())
	require.NoError(t, err)
	require.Len(t, bindings, 2, "name scheme has no duplicate guard")

	values, err := svc.ListValues(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"pythagoras"}, values, "duplicate assigns still resolve to one tag")
}

func TestTaggingServiceProblemsByTagUnknownValue(t *testing.T) {
	problems := newProblemRepoStub()

	typeSvc := NewTaggingService(TypeScheme, newTagRepoStub(), problems, testLogger())
	resolved, err := typeSvc.ProblemsByTag(context.Background(), "nonexistent")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Empty(t, resolved)

	nameSvc := NewTaggingService(NameScheme, newTagRepoStub(), problems, testLogger())
	_, err = nameSvc.ProblemsByTag(context.Background(), "nonexistent")
	require.ErrorIs(t, err, ErrTagNotFound)
}

func TestTaggingServiceProblemsByTagResolvesBindings(t *testing.T) {
	problems := newProblemRepoStub()
	tags := newTagRepoStub()
	svc := NewTaggingService(TypeScheme, tags, problems, testLogger())

	problemID := seedProblem(t, problems)
	otherID := seedProblem(t, problems)

	_, err := svc.Assign(context.Background(), "arithmetic", problemID.Hex())
	require.NoError(t, err)
	_, err = svc.Assign(context.Background(), "arithmetic", otherID.Hex())
	require.NoError(t, err)

	resolved, err := svc.ProblemsByTag(context.Background(), "arithmetic")
	require.NoError(t, err)
	require.Len(t, resolved, 2)
}

func TestTaggingServiceSkipsDanglingBindings(t *testing.T) {
	problems := newProblemRepoStub()
	tags := newTagRepoStub()
	svc := NewTaggingService(TypeScheme, tags, problems, testLogger())

	problemID := seedProblem(t, problems)

	_, err := svc.Assign(context.Background(), "arithmetic", problemID.Hex())
	require.NoError(t, err)

	// Bind a problem that no longer exists.
	tag, err := tags.GetOrCreate(context.Background(), "arithmetic")
	require.NoError(t, err)
	require.NoError(t, tags.InsertBinding(context.Background(), tag.ID, primitive.NewObjectID()))

	resolved, err := svc.ProblemsByTag(context.Background(), "arithmetic")
	require.NoError(t, err)
	require.Len(t, resolved, 1, "dangling binding must be skipped, not fail the request")
}

func TestTaggingServiceDebugListings(t *testing.T) {
	problems := newProblemRepoStub()
	tags := newTagRepoStub()
	svc := NewTaggingService(TypeScheme, tags, problems, testLogger())

	problemID := seedProblem(t, problems)
	_, err := svc.Assign(context.Background(), "arithmetic", problemID.Hex())
	require.NoError(t, err)

	rendered, err := svc.ListBindings(context.Background())
	require.NoError(t, err)
	require.Len(t, rendered, 1)
	require.Contains(t, rendered[0], "type_id=")
	require.Contains(t, rendered[0], problemID.Hex())

	withIDs, err := svc.ListTagsWithIDs(context.Background())
	require.NoError(t, err)
	require.Len(t, withIDs, 1)
	require.Contains(t, withIDs[0], "type_name=arithmetic")
}
