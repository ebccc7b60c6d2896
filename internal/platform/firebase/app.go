// Package firebase opens the Firebase Admin SDK clients the server needs.
package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Config holds Firebase configuration.
type Config struct {
	ProjectID string
	// CredentialsFile is a service account JSON path. Empty uses application
	// default credentials, or the emulators when their hosts are set.
	CredentialsFile string
	// Firestore opens a Firestore client. The in-memory store runs without one.
	Firestore bool
}

// Clients holds initialized Firebase clients. Firestore is nil unless
// requested in Config.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// InitializeClients sets up Firebase and returns clients directly.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		creds, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	clients := &Clients{}
	if clients.Auth, err = app.Auth(ctx); err != nil {
		return nil, fmt.Errorf("auth client: %w", err)
	}
	if cfg.Firestore {
		if clients.Firestore, err = app.Firestore(ctx); err != nil {
			return nil, fmt.Errorf("firestore client: %w", err)
		}
	}
	return clients, nil
}

// Close closes the Firestore client if one was opened.
func (c *Clients) Close() error {
	if c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
