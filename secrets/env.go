package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvSecretsProvider implements SecretsProvider using environment variables
type EnvSecretsProvider struct {
	prefix string
}

var _ SecretsProvider = (*EnvSecretsProvider)(nil)

func NewEnvSecretsProvider(prefix string) *EnvSecretsProvider {
	return &EnvSecretsProvider{prefix: prefix}
}

// GetSecret looks up prefix+key, then key alone. Blank values count as missing.
func (e *EnvSecretsProvider) GetSecret(ctx context.Context, key string) (string, error) {
	if e.prefix != "" {
		if v := strings.TrimSpace(os.Getenv(e.prefix + key)); v != "" {
			return v, nil
		}
	}
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w in environment variables: %s", ErrSecretNotFound, key)
}

func (e *EnvSecretsProvider) Close() error {
	return nil
}
