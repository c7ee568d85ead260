// Package security verifies the bearer tokens presented by API callers.
package security

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"flyerpoints-backend/internal/logger"
)

// TokenVerifier turns a raw bearer token into the caller's user ID.
// Failures are always UNAUTHENTICATED; callers never learn why a token
// was rejected.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// FirebaseVerifier validates Firebase Auth ID tokens. Production path.
type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		logger.Debug("ID token verification failed", "error", err)
		return "", status.Error(codes.Unauthenticated, "invalid token")
	}
	return decoded.UID, nil
}

// LocalVerifier validates HS256 tokens signed with a shared secret.
// Dev path only: it pairs with the memory store so the whole service
// runs without Firebase credentials.
type LocalVerifier struct {
	secret []byte
}

func NewLocalVerifier(secret string) *LocalVerifier {
	return &LocalVerifier{secret: []byte(secret)}
}

func (v *LocalVerifier) Verify(ctx context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, status.Errorf(codes.Unauthenticated, "unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		logger.Debug("local token verification failed", "error", err)
		return "", status.Error(codes.Unauthenticated, "invalid token")
	}
	if claims.Subject == "" {
		return "", status.Error(codes.Unauthenticated, "token has no subject")
	}
	return claims.Subject, nil
}

// SignLocalToken mints an HS256 token for the given user. Dev tooling
// and tests only.
func SignLocalToken(secret, userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: userID})
	return token.SignedString([]byte(secret))
}
