package firebase

import (
	"context"
	"errors"
	"testing"

	"github.com/delta94/youth-membership-admin-ui/internal/platform/auth"
	"github.com/delta94/youth-membership-admin-ui/internal/testutil"
)

func TestFirebaseVerifierAgainstEmulator(t *testing.T) {
	testutil.SkipIfEmulatorUnavailable(t)
	testutil.SetupEmulator(t)
	testutil.ClearEmulators(t)
	t.Cleanup(func() { testutil.ClearAccounts(t) })

	clients, err := InitializeClients(context.Background(), Config{ProjectID: testutil.ProjectID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verifier := auth.NewFirebaseVerifier(clients.Auth)

	signUp := testutil.CreateTestUser(t, "admin@example.com", "secret-password")
	user, err := verifier.Verify(context.Background(), signUp.IDToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.UID != signUp.LocalID || user.Email != "admin@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
	if user.Admin {
		t.Fatal("a new account must not be an administrator")
	}

	if err := clients.Auth.SetCustomUserClaims(context.Background(), signUp.LocalID,
		map[string]any{auth.AdminClaim: true}); err != nil {
		t.Fatalf("set admin claim: %v", err)
	}
	signIn := testutil.SignIn(t, "admin@example.com", "secret-password")
	admin, err := verifier.Verify(context.Background(), signIn.IDToken)
	if err != nil {
		t.Fatalf("verify after claim: %v", err)
	}
	if !admin.Admin {
		t.Fatal("expected the refreshed token to carry the admin claim")
	}

	if _, err := verifier.Verify(context.Background(), "not-a-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
