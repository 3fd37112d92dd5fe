//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"furnish-admin/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, jwt.RoleOperator)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, jwt.RoleOperator.String(), claims.Role)
}

func TestValidateToken(t *testing.T) {
	svc := jwt.NewService("test-secret", time.Hour)

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Hour)
		token, err := other.GenerateToken(uuid.New(), jwt.RoleAdmin)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := jwt.NewService("test-secret", -time.Minute)
		token, err := expired.GenerateToken(uuid.New(), jwt.RoleViewer)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role     jwt.Role
		min      jwt.Role
		expected bool
	}{
		{jwt.RoleViewer, jwt.RoleViewer, true},
		{jwt.RoleViewer, jwt.RoleOperator, false},
		{jwt.RoleOperator, jwt.RoleOperator, true},
		{jwt.RoleOperator, jwt.RoleAdmin, false},
		{jwt.RoleAdmin, jwt.RoleOperator, true},
		{jwt.RoleAdmin, jwt.RoleAdmin, true},
		{jwt.Role("unknown"), jwt.RoleViewer, false},
	}
	for _, tc := range cases {
		t.Run(tc.role.String()+" at least "+tc.min.String(), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.role.AtLeast(tc.min))
		})
	}
}
