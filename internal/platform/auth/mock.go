package auth

import (
	"context"
)

// MockVerifier accepts any token as User, or fails every token with Error.
type MockVerifier struct {
	User  *FirebaseUser
	Error error
}

func (m *MockVerifier) Verify(_ context.Context, _ string) (*FirebaseUser, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.User, nil
}

// TestUser returns a signed-in administrator holding the admin claim.
func TestUser() *FirebaseUser {
	return &FirebaseUser{
		UID:           "test-admin-123",
		Email:         "admin@example.com",
		EmailVerified: true,
		Admin:         true,
	}
}

// TestMember returns a signed-in Firebase user without the admin claim, such
// as a member of the public who registered in the same project.
func TestMember() *FirebaseUser {
	return &FirebaseUser{
		UID:           "test-member-456",
		Email:         "member@example.com",
		EmailVerified: true,
	}
}

var _ Verifier = (*MockVerifier)(nil)
