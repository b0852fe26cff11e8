package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/awantoch/flowsketch/config"
	"github.com/awantoch/flowsketch/constants"
)

// ErrSecretNotFound is returned when a provider has no value for a key.
var ErrSecretNotFound = errors.New("secret not found")

// SecretsProvider resolves named secrets from a backing store.
type SecretsProvider interface {
	GetSecret(ctx context.Context, key string) (string, error)
	Close() error
}

// NewSecretsProvider creates a secrets provider from configuration
func NewSecretsProvider(ctx context.Context, cfg *config.SecretsConfig) (SecretsProvider, error) {
	if cfg == nil {
		return NewEnvSecretsProvider(""), nil
	}

	switch strings.ToLower(cfg.Driver) {
	case "", constants.SecretsDriverEnv:
		return NewEnvSecretsProvider(cfg.Prefix), nil
	case constants.SecretsDriverAWS, "aws":
		if cfg.Region == "" {
			return nil, fmt.Errorf("region is required for AWS Secrets Manager")
		}
		p, err := NewAWSSecretsProvider(ctx, cfg.Region, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported secrets driver: %s", cfg.Driver)
	}
}
