package auth

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// AdminClaim is the Firebase custom claim that grants access to the youth
// membership admin API. Set it with the Admin SDK's SetCustomUserClaims.
const AdminClaim = "admin"

// FirebaseUser is the identity behind a verified ID token.
type FirebaseUser struct {
	UID           string
	Email         string
	EmailVerified bool
	// Admin is true when the token carries AdminClaim set to true.
	Admin bool
}

// Token verification failures. ErrCertificateFetch is transient and maps to
// 503; the others mean the caller must sign in again.
var (
	ErrNoToken          = errors.New("missing authorization header")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")
	ErrTokenRevoked     = errors.New("token revoked")
	ErrUserDisabled     = errors.New("user disabled")
	ErrCertificateFetch = errors.New("failed to fetch certificates")
)

// Verifier validates tokens and returns user information.
type Verifier interface {
	Verify(ctx context.Context, token string) (*FirebaseUser, error)
}

// FirebaseVerifier verifies ID tokens with the Firebase Admin SDK, rejecting
// revoked tokens.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates a new verifier with the given auth client.
func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*FirebaseUser, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, classifyVerifyError(err)
	}
	return userFromToken(token), nil
}

// verifyFailures maps SDK error predicates to sentinels, most specific first.
var verifyFailures = []struct {
	is  func(error) bool
	err error
}{
	{fbauth.IsCertificateFetchFailed, ErrCertificateFetch},
	{fbauth.IsIDTokenExpired, ErrTokenExpired},
	{fbauth.IsIDTokenRevoked, ErrTokenRevoked},
	{fbauth.IsUserDisabled, ErrUserDisabled},
}

func classifyVerifyError(err error) error {
	for _, f := range verifyFailures {
		if f.is(err) {
			return f.err
		}
	}
	return ErrInvalidToken
}

func userFromToken(token *fbauth.Token) *FirebaseUser {
	email, _ := token.Claims["email"].(string)
	verified, _ := token.Claims["email_verified"].(bool)
	admin, _ := token.Claims[AdminClaim].(bool)
	return &FirebaseUser{
		UID:           token.UID,
		Email:         email,
		EmailVerified: verified,
		Admin:         admin,
	}
}

// ExtractBearerToken returns the token of a "Bearer <token>" header value.
// The scheme is case-insensitive.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrInvalidToken
	}
	return token, nil
}

var _ Verifier = (*FirebaseVerifier)(nil)
