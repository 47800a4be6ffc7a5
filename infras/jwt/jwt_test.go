package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inn/config"
	"inn/infras/jwt"
)

func newService(secret string, expireMin int) jwt.JWT {
	cfg := &config.Config{}
	cfg.JWT.AdminSecret = secret
	cfg.JWT.AdminExpireMin = expireMin

	return jwt.New(cfg)
}

func TestJWT_GenerateAndValidate(t *testing.T) {
	t.Run("round trip preserves the subject", func(t *testing.T) {
		service := newService("test-secret", 60)

		token, err := service.GenerateAdminToken("ops")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "ops", claims.Subject)
		assert.NotEmpty(t, claims.TokenID)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		token, err := newService("secret-a", 60).GenerateAdminToken("ops")
		require.NoError(t, err)

		_, err = newService("secret-b", 60).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		service := newService("test-secret", -1)

		token, err := service.GenerateAdminToken("ops")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		service := newService("test-secret", 60)

		_, err := service.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{
			name:   "bearer token",
			header: "Bearer abc.def.ghi",
			want:   "abc.def.ghi",
		},
		{
			name:    "missing scheme",
			header:  "abc.def.ghi",
			wantErr: true,
		},
		{
			name:    "empty token",
			header:  "Bearer ",
			wantErr: true,
		},
		{
			name:    "empty header",
			header:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
