package aggregate

import (
	"testing"

	"marketplace-backend/internal/domain/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("Alice", "alice@example.com", "secret123", RoleUser)
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID())
	assert.Equal(t, "Alice", user.Name())
	assert.Equal(t, RoleUser, user.Role())
	assert.True(t, user.IsActive())
	assert.NotEqual(t, "secret123", user.HashedPassword())

	events := user.GetUncommittedEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(*event.UserCreated)
	require.True(t, ok)
	assert.Equal(t, user.ID(), created.UserID)
	assert.Equal(t, "User", created.Role)
}

func TestNewUserValidation(t *testing.T) {
	_, err := NewUser("", "alice@example.com", "secret123", RoleUser)
	assert.Error(t, err)

	_, err = NewUser("Alice", "", "secret123", RoleUser)
	assert.Error(t, err)

	_, err = NewUser("Alice", "alice@example.com", "short", RoleUser)
	assert.Error(t, err)

	_, err = NewUser("Alice", "alice@example.com", "secret123", UserRole("Superuser"))
	assert.Error(t, err)
}

func TestUserVerifyPassword(t *testing.T) {
	user, err := NewUser("Alice", "alice@example.com", "secret123", RoleUser)
	require.NoError(t, err)

	assert.True(t, user.VerifyPassword("secret123"))
	assert.False(t, user.VerifyPassword("wrong"))
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewUser("Alice", "alice@example.com", "secret123", RoleUser)
	require.NoError(t, err)
	user.MarkEventsAsCommitted()

	require.NoError(t, user.ChangePassword("newsecret"))
	assert.True(t, user.VerifyPassword("newsecret"))
	assert.False(t, user.VerifyPassword("secret123"))
	require.Len(t, user.GetUncommittedEvents(), 1)

	assert.Error(t, user.ChangePassword("short"))
}

func TestUserPromoteToRole(t *testing.T) {
	user, err := NewUser("Alice", "alice@example.com", "secret123", RoleUser)
	require.NoError(t, err)
	user.MarkEventsAsCommitted()

	require.NoError(t, user.PromoteToRole(RoleVendor))
	assert.Equal(t, RoleVendor, user.Role())

	events := user.GetUncommittedEvents()
	require.Len(t, events, 1)
	updated, ok := events[0].(*event.UserRoleUpdated)
	require.True(t, ok)
	assert.Equal(t, "Vendor", updated.Role)

	assert.Error(t, user.PromoteToRole(UserRole("Superuser")))
}

func TestUserDelete(t *testing.T) {
	user, err := NewUser("Alice", "alice@example.com", "secret123", RoleUser)
	require.NoError(t, err)
	user.MarkEventsAsCommitted()

	require.NoError(t, user.Delete())
	assert.False(t, user.IsActive())

	events := user.GetUncommittedEvents()
	require.Len(t, events, 1)
	_, ok := events[0].(*event.UserDeleted)
	assert.True(t, ok)
}
