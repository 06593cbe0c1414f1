// Package secrets fills unset credentials from Google Secret Manager.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when the secret has no accessible version.
var ErrNotFound = errors.New("secret not found")

// Accessor reads the latest version of a named secret.
type Accessor interface {
	Access(ctx context.Context, name string) (string, error)
}

type versionAccessor interface {
	AccessSecretVersion(ctx context.Context, req *secretmanagerpb.AccessSecretVersionRequest, opts ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error)
}

type SecretManager struct {
	client    versionAccessor
	closer    func() error
	projectID string
}

func NewSecretManager(ctx context.Context, projectID string, opts ...option.ClientOption) (*SecretManager, error) {
	if projectID == "" {
		return nil, fmt.Errorf("GCP project ID is not set")
	}
	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &SecretManager{client: client, closer: client.Close, projectID: projectID}, nil
}

func (s *SecretManager) Access(ctx context.Context, name string) (string, error) {
	resourceName := fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, name)
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: resourceName})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("failed to access secret %s: %w", name, err)
	}
	return strings.TrimSpace(string(result.Payload.GetData())), nil
}

func (s *SecretManager) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// Resolve fills every empty target from the accessor. Targets that already
// hold a value are left alone; secrets that do not exist are skipped.
func Resolve(ctx context.Context, acc Accessor, targets map[string]*string, logger zerolog.Logger) error {
	for name, target := range targets {
		if target == nil || *target != "" {
			continue
		}
		value, err := acc.Access(ctx, name)
		if errors.Is(err, ErrNotFound) {
			logger.Debug().Str("secret", name).Msg("Secret not found, leaving unset")
			continue
		}
		if err != nil {
			return err
		}
		*target = value
		logger.Info().Str("secret", name).Msg("Loaded secret from Secret Manager")
	}
	return nil
}
