package application

import (
	"context"
	"testing"

	"github.com/sharespot/service-sharing/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserFixture(t *testing.T) (*fakeUserRepo, *UserService) {
	t.Helper()
	users := newFakeUserRepo()
	return users, NewUserService(users, zap.NewNop())
}

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a user", func(t *testing.T) {
		_, svc := newUserFixture(t)
		dto, err := svc.Create(ctx, CreateUserRequest{Name: "alice", Email: "alice@example.com"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), dto.ID)
		assert.Equal(t, "alice", dto.Name)
	})

	t.Run("rejects an email without an at sign", func(t *testing.T) {
		_, svc := newUserFixture(t)
		_, err := svc.Create(ctx, CreateUserRequest{Name: "alice", Email: "not-an-email"})
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		_, svc := newUserFixture(t)
		_, err := svc.Create(ctx, CreateUserRequest{Name: "alice", Email: "alice@example.com"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, CreateUserRequest{Name: "other alice", Email: "alice@example.com"})
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeConflict))
	})
}

func TestUserService_GetByID(t *testing.T) {
	ctx := context.Background()
	users, svc := newUserFixture(t)
	u := users.mustAdd("alice", "alice@example.com")

	dto, err := svc.GetByID(ctx, u.ID())
	require.NoError(t, err)
	assert.Equal(t, "alice", dto.Name)

	_, err = svc.GetByID(ctx, 99)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestUserService_GetAll(t *testing.T) {
	ctx := context.Background()
	users, svc := newUserFixture(t)
	users.mustAdd("alice", "alice@example.com")
	users.mustAdd("bob", "bob@example.com")

	dtos, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, "alice", dtos[0].Name)
	assert.Equal(t, "bob", dtos[1].Name)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		users, svc := newUserFixture(t)
		u := users.mustAdd("alice", "alice@example.com")

		dto, err := svc.Update(ctx, u.ID(), UpdateUserRequest{Name: strPtr("alicia")})
		require.NoError(t, err)
		assert.Equal(t, "alicia", dto.Name)
		assert.Equal(t, "alice@example.com", dto.Email)
	})

	t.Run("invalid email", func(t *testing.T) {
		users, svc := newUserFixture(t)
		u := users.mustAdd("alice", "alice@example.com")

		_, err := svc.Update(ctx, u.ID(), UpdateUserRequest{Email: strPtr("nope")})
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeValidation))
	})

	t.Run("missing user", func(t *testing.T) {
		_, svc := newUserFixture(t)
		_, err := svc.Update(ctx, 99, UpdateUserRequest{Name: strPtr("alicia")})
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeNotFound))
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	users, svc := newUserFixture(t)
	u := users.mustAdd("alice", "alice@example.com")

	require.NoError(t, svc.Delete(ctx, u.ID()))

	_, err := svc.GetByID(ctx, u.ID())
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	err = svc.Delete(ctx, u.ID())
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}
