package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	messagingmocks "answerhub/internal/messaging/mocks"
	"answerhub/internal/models"
	repomocks "answerhub/internal/repository/mocks"
)

func newTestService(t *testing.T) (*InputPromptServiceImpl, *repomocks.InputPromptRepository, *messagingmocks.PromptEventPublisher) {
	t.Helper()
	repo := new(repomocks.InputPromptRepository)
	publisher := new(messagingmocks.PromptEventPublisher)
	svc := NewInputPromptService(repo, publisher, zap.NewNop())
	return svc, repo, publisher
}

func ownedPrompt(id int64, owner uuid.UUID) *models.InputPrompt {
	return &models.InputPrompt{
		ID:       id,
		Prompt:   "Summarize",
		Content:  "Summarize the following document",
		Active:   true,
		IsPublic: false,
		UserID:   &owner,
	}
}

func TestCreate_Success(t *testing.T) {
	svc, repo, publisher := newTestService(t)
	owner := uuid.New()

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.InputPrompt")).Run(func(args mock.Arguments) {
		p := args.Get(1).(*models.InputPrompt)
		p.ID = 42
	}).Return(nil)
	publisher.On("PublishPromptEvent", mock.Anything, mock.Anything).Return(nil)

	prompt, err := svc.Create(context.Background(), &owner, "What is X?", "X is the unknown", false)
	require.NoError(t, err)
	require.NotNil(t, prompt)

	// The prompt text must survive untouched, no truncation or mutation.
	assert.Equal(t, "What is X?", prompt.Prompt)
	assert.Equal(t, "X is the unknown", prompt.Content)
	assert.True(t, prompt.Active, "a new prompt must be active")
	assert.False(t, prompt.IsPublic)
	require.NotNil(t, prompt.UserID)
	assert.Equal(t, owner, *prompt.UserID)

	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCreate_MaxLengthBoundary(t *testing.T) {
	svc, repo, publisher := newTestService(t)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishPromptEvent", mock.Anything, mock.Anything).Return(nil)

	// Exactly 1000 characters is still valid.
	text := strings.Repeat("a", models.MaxPromptLength)
	prompt, err := svc.Create(context.Background(), nil, text, "content", true)
	require.NoError(t, err)
	assert.Equal(t, text, prompt.Prompt)

	// The limit counts characters, not bytes: 1000 two-byte runes are fine.
	multibyte := strings.Repeat("é", models.MaxPromptLength)
	prompt, err = svc.Create(context.Background(), nil, multibyte, "content", true)
	require.NoError(t, err)
	assert.Equal(t, multibyte, prompt.Prompt)
}

func TestCreate_MultibytePromptTooLong(t *testing.T) {
	svc, repo, _ := newTestService(t)

	text := strings.Repeat("é", models.MaxPromptLength+1)
	_, err := svc.Create(context.Background(), nil, text, "content", true)
	require.ErrorIs(t, err, models.ErrPromptTooLong)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_PromptTooLong(t *testing.T) {
	svc, repo, _ := newTestService(t)

	text := strings.Repeat("a", models.MaxPromptLength+1)
	_, err := svc.Create(context.Background(), nil, text, "content", true)
	require.ErrorIs(t, err, models.ErrPromptTooLong)

	// A rejected prompt must not touch the store.
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_AnonymousIsAlwaysPublic(t *testing.T) {
	svc, repo, publisher := newTestService(t)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishPromptEvent", mock.Anything, mock.Anything).Return(nil)

	prompt, err := svc.Create(context.Background(), nil, "What is X?", "X is ...", false)
	require.NoError(t, err)
	assert.Nil(t, prompt.UserID)
	assert.True(t, prompt.IsPublic, "an ownerless prompt has no one to scope it to")
}

func TestCreate_PublisherFailureDoesNotFailRequest(t *testing.T) {
	svc, repo, publisher := newTestService(t)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	publisher.On("PublishPromptEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := svc.Create(context.Background(), nil, "prompt", "content", true)
	assert.NoError(t, err, "eventing is fire-and-forget")
}

func TestUpdate_Success(t *testing.T) {
	svc, repo, publisher := newTestService(t)
	owner := uuid.New()
	existing := ownedPrompt(1, owner)

	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)
	publisher.On("PublishPromptEvent", mock.Anything, mock.Anything).Return(nil)

	updated, err := svc.Update(context.Background(), Caller{ID: owner}, 1, "New prompt", "New content", true, true)
	require.NoError(t, err)
	assert.Equal(t, "New prompt", updated.Prompt)
	assert.Equal(t, "New content", updated.Content)
	assert.True(t, updated.IsPublic)
	repo.AssertExpectations(t)
}

func TestUpdate_NotFound(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.On("GetByID", mock.Anything, int64(99)).Return(nil, models.ErrPromptNotFound)

	_, err := svc.Update(context.Background(), Caller{ID: uuid.New()}, 99, "p", "c", true, true)
	require.ErrorIs(t, err, models.ErrPromptNotFound)
}

func TestUpdate_NotOwner(t *testing.T) {
	svc, repo, _ := newTestService(t)
	owner := uuid.New()
	other := uuid.New()
	existing := ownedPrompt(1, owner)

	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)

	_, err := svc.Update(context.Background(), Caller{ID: other}, 1, "p", "c", true, true)
	require.ErrorIs(t, err, models.ErrNotOwner)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_TooLongRejectedRegardlessOfCaller(t *testing.T) {
	svc, repo, _ := newTestService(t)
	owner := uuid.New()
	existing := ownedPrompt(1, owner)

	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)

	text := strings.Repeat("a", models.MaxPromptLength+1)

	// The length check fires before authorization: owner and stranger see
	// the same validation error.
	_, err := svc.Update(context.Background(), Caller{ID: owner}, 1, text, "c", true, true)
	require.ErrorIs(t, err, models.ErrPromptTooLong)

	_, err = svc.Update(context.Background(), Caller{ID: uuid.New()}, 1, text, "c", true, true)
	require.ErrorIs(t, err, models.ErrPromptTooLong)

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_OwnerlessRequiresAdmin(t *testing.T) {
	svc, repo, publisher := newTestService(t)
	existing := &models.InputPrompt{ID: 1, Prompt: "p", Content: "c", Active: true, IsPublic: true}

	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)

	_, err := svc.Update(context.Background(), Caller{ID: uuid.New()}, 1, "p2", "c2", true, true)
	require.ErrorIs(t, err, models.ErrNotOwner)

	repo.On("Update", mock.Anything, existing).Return(nil)
	publisher.On("PublishPromptEvent", mock.Anything, mock.Anything).Return(nil)

	admin := Caller{ID: uuid.New(), Roles: []string{models.RoleAdmin}}
	_, err = svc.Update(context.Background(), admin, 1, "p2", "c2", true, true)
	require.NoError(t, err)
}

func TestDelete_SoftDeleteByOwner(t *testing.T) {
	svc, repo, publisher := newTestService(t)
	owner := uuid.New()
	existing := ownedPrompt(1, owner)

	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)
	repo.On("SoftDelete", mock.Anything, int64(1)).Return(nil)
	publisher.On("PublishPromptEvent", mock.Anything, mock.Anything).Return(nil)

	err := svc.Delete(context.Background(), Caller{ID: owner}, 1)
	require.NoError(t, err)
	repo.AssertCalled(t, "SoftDelete", mock.Anything, int64(1))
}

func TestDelete_NotOwner(t *testing.T) {
	svc, repo, _ := newTestService(t)
	owner := uuid.New()
	existing := ownedPrompt(1, owner)

	repo.On("GetByID", mock.Anything, int64(1)).Return(existing, nil)

	err := svc.Delete(context.Background(), Caller{ID: uuid.New()}, 1)
	require.ErrorIs(t, err, models.ErrNotOwner)
	repo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
}

func TestDelete_NotFound(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repo.On("GetByID", mock.Anything, int64(7)).Return(nil, models.ErrPromptNotFound)

	err := svc.Delete(context.Background(), Caller{ID: uuid.New()}, 7)
	require.ErrorIs(t, err, models.ErrPromptNotFound)
}

func TestGetByID_PassesCallerToVisibilityFilter(t *testing.T) {
	svc, repo, _ := newTestService(t)
	caller := uuid.New()
	existing := ownedPrompt(1, caller)

	repo.On("GetVisibleByID", mock.Anything, int64(1), &caller).Return(existing, nil)

	prompt, err := svc.GetByID(context.Background(), &caller, 1)
	require.NoError(t, err)
	assert.Equal(t, existing, prompt)

	repo.On("GetVisibleByID", mock.Anything, int64(2), (*uuid.UUID)(nil)).Return(nil, models.ErrPromptNotFound)

	_, err = svc.GetByID(context.Background(), nil, 2)
	require.ErrorIs(t, err, models.ErrPromptNotFound)
}

func TestListByUser_ActiveOnly(t *testing.T) {
	svc, repo, _ := newTestService(t)
	userID := uuid.New()
	expected := []*models.InputPrompt{ownedPrompt(1, userID)}

	repo.On("ListByUser", mock.Anything, &userID, mock.MatchedBy(func(active *bool) bool {
		return active != nil && *active
	})).Return(expected, nil)

	prompts, err := svc.ListByUser(context.Background(), userID, true)
	require.NoError(t, err)
	assert.Equal(t, expected, prompts)
}

func TestListByUser_IncludingInactive(t *testing.T) {
	svc, repo, _ := newTestService(t)
	userID := uuid.New()

	repo.On("ListByUser", mock.Anything, &userID, (*bool)(nil)).Return([]*models.InputPrompt{}, nil)

	prompts, err := svc.ListByUser(context.Background(), userID, false)
	require.NoError(t, err)
	assert.Empty(t, prompts)
}

func TestListPublic(t *testing.T) {
	svc, repo, _ := newTestService(t)
	expected := []*models.InputPrompt{
		{ID: 1, Prompt: "p", Content: "c", Active: true, IsPublic: true},
	}

	repo.On("ListPublic", mock.Anything).Return(expected, nil)

	prompts, err := svc.ListPublic(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, prompts)
}

func TestListAll_RepoErrorIsWrapped(t *testing.T) {
	svc, repo, _ := newTestService(t)

	repoErr := errors.New("connection reset")
	repo.On("ListByUser", mock.Anything, (*uuid.UUID)(nil), (*bool)(nil)).Return(nil, repoErr)

	_, err := svc.ListAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, repoErr)
}
