package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/awantoch/flowsketch/adapter"
	"github.com/awantoch/flowsketch/config"
	"github.com/awantoch/flowsketch/constants"
	"github.com/awantoch/flowsketch/secrets"
	"github.com/awantoch/flowsketch/utils"
)

// ResolveAPIKey reads the completion provider's API key through the configured secrets
// provider. A missing key is a KindMissingCredential error.
func ResolveAPIKey(ctx context.Context, cfg *config.Config) (string, error) {
	sp, err := secrets.NewSecretsProvider(ctx, &cfg.Secrets)
	if err != nil {
		return "", &Error{Kind: KindMissingCredential, Msg: "secrets provider", Err: err}
	}
	defer sp.Close()

	name := cfg.APIKeyName()
	key, err := sp.GetSecret(ctx, name)
	if errors.Is(err, secrets.ErrSecretNotFound) {
		return "", newError(KindMissingCredential, nil, constants.ResponseMissingCredentialFmt, name)
	}
	if err != nil {
		return "", newError(KindMissingCredential, err, "resolve %s", name)
	}
	return key, nil
}

// NewServiceFromConfig resolves credentials and builds a ready Service. It is meant to run
// once at startup; any error should stop the process before it serves requests.
func NewServiceFromConfig(ctx context.Context, cfg *config.Config, events Publisher) (*Service, error) {
	key, err := ResolveAPIKey(ctx, cfg)
	if err != nil {
		return nil, err
	}
	completer, err := adapter.NewCompleter(cfg, key)
	if err != nil {
		return nil, fmt.Errorf("completion client: %w", err)
	}
	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	utils.Debug("completion provider %s: %s", completer.ID(), opts)
	return NewService(completer, opts, events), nil
}
