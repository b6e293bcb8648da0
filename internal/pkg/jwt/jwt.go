package jwt

import (
	"context"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/iza-pos/pos-backend-go/internal/domain/archive"
)

// Actor is the authenticated user stamped onto archive records.
type Actor struct {
	ID   string
	Name string
}

type Service interface {
	GenerateAccessToken(userID string, name string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, name string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"name":    name,
		"type":    "access",
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

// ActorFromContext resolves the current authenticated actor from the JWT
// claims placed in ctx by the jwtauth verifier. Returns
// archive.ErrNotAuthenticated when no usable identity is present.
func ActorFromContext(ctx context.Context) (Actor, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Actor{}, archive.ErrNotAuthenticated
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Actor{}, archive.ErrNotAuthenticated
	}

	name, _ := claims["name"].(string)
	if name == "" {
		name = userID
	}

	return Actor{ID: userID, Name: name}, nil
}
