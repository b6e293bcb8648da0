package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "Owner")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "Owner", claims["name"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("test-secret", "not-a-duration")

	_, _, err := svc.GenerateAccessToken("user-1", "Owner")
	assert.Error(t, err)
}

func TestActorFromContext(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")
	tokenString, _, err := svc.GenerateAccessToken("user-1", "Owner")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	actor, err := ActorFromContext(jwtauth.NewContext(context.Background(), token, nil))
	require.NoError(t, err)
	assert.Equal(t, Actor{ID: "user-1", Name: "Owner"}, actor)
}

func TestActorFromContext_NoToken(t *testing.T) {
	_, err := ActorFromContext(context.Background())
	assert.ErrorIs(t, err, archive.ErrNotAuthenticated)
}

func TestActorFromContext_NameFallsBackToID(t *testing.T) {
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id": "user-1",
		"type":    "access",
	})
	require.NoError(t, err)

	actor, err := ActorFromContext(jwtauth.NewContext(context.Background(), token, nil))
	require.NoError(t, err)
	assert.Equal(t, "user-1", actor.Name)
}

func TestActorFromContext_MissingUserID(t *testing.T) {
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"name": "Owner",
		"type": "access",
	})
	require.NoError(t, err)

	_, err = ActorFromContext(jwtauth.NewContext(context.Background(), token, nil))
	assert.ErrorIs(t, err, archive.ErrNotAuthenticated)
}
