package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with hashed password", func(t *testing.T) {
		user, err := NewUser("mpautasso", "MPautasso@Example.com", "s3cret-pass", RoleAdmin)
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "mpautasso", user.Username)
		assert.Equal(t, "mpautasso@example.com", user.Email)
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.Equal(t, RoleAdmin, user.Role)
		assert.True(t, user.Active)
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("mpautasso", "m@example.com", "short", RoleVendedor)
		require.Error(t, err)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("mpautasso", "not-an-email", "s3cret-pass", RoleVendedor)
		require.Error(t, err)
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser("mpautasso", "m@example.com", "s3cret-pass", Role("root"))
		require.Error(t, err)
	})
}

func TestUserCheckPassword(t *testing.T) {
	user, err := NewUser("mpautasso", "m@example.com", "s3cret-pass", RoleVendedor)
	require.NoError(t, err)

	assert.True(t, user.CheckPassword("s3cret-pass"))
	assert.False(t, user.CheckPassword("wrong-pass"))
}
