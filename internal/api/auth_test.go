package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/uroom/uroom-server/internal/types"
)

func TestUserId(t *testing.T) {
	tcases := []struct {
		name     string
		ctx      context.Context
		userId   string
		expected bool
	}{
		{
			name:     "no user ID",
			ctx:      context.Background(),
			expected: false,
		},
		{
			name:     "user ID set",
			ctx:      WithUserId(context.Background(), "u-maya"),
			userId:   "u-maya",
			expected: true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			userId, ok := UserId(tc.ctx)
			assert.Equal(t, tc.expected, ok, "expected UserId to return %v", tc.expected)
			assert.Equal(t, tc.userId, userId, "expected UserId to return %q", tc.userId)
		})
	}
}

func Test_createJwtForSession(t *testing.T) {
	app, _ := newTestApp(t)

	token, err := app.createJwtForSession(types.User{Id: "u-maya"}, time.Hour)
	assert.NoError(t, err, "expected token to be created")
	assert.NotEmpty(t, token)

	userId, err := app.extractUserIdFromToken(token)
	assert.NoError(t, err, "expected token to verify")
	assert.Equal(t, "u-maya", userId)
}

func Test_verifyToken(t *testing.T) {
	app, _ := newTestApp(t)

	tcases := []struct {
		name    string
		token   func() string
		wantErr bool
	}{
		{
			name: "valid token",
			token: func() string {
				tok, err := app.createJwtForSession(types.User{Id: "u-maya"}, time.Hour)
				assert.NoError(t, err)
				return tok
			},
		},
		{
			name: "expired token",
			token: func() string {
				tok, err := app.createJwtForSession(types.User{Id: "u-maya"}, -time.Hour)
				assert.NoError(t, err)
				return tok
			},
			wantErr: true,
		},
		{
			name:    "garbage token",
			token:   func() string { return "not.a.token" },
			wantErr: true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := app.verifyToken(tc.token())
			if tc.wantErr {
				assert.Error(t, err, "expected verification to fail")
			} else {
				assert.NoError(t, err, "expected verification to succeed")
			}
		})
	}
}

func Test_createJwtCookie(t *testing.T) {
	cookie := createJwtCookie("tok", time.Hour)

	assert.Equal(t, tokenCookieKey, cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly, "expected cookie to be http-only")
}
