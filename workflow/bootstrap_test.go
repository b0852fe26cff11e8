package workflow

import (
	"context"
	"testing"

	"github.com/awantoch/flowsketch/config"
	"github.com/awantoch/flowsketch/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAPIKey_Missing(t *testing.T) {
	t.Setenv(constants.EnvOpenAIKey, "")
	cfg := config.Default()

	_, err := ResolveAPIKey(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, KindMissingCredential, KindOf(err))
	assert.Equal(t, "OPENAI_API_KEY is not set in environment variables", err.Error())
}

func TestResolveAPIKey_FromEnv(t *testing.T) {
	t.Setenv(constants.EnvAnthropicKey, "sk-ant-test")
	cfg := config.Default()
	cfg.Completion.Provider = constants.ProviderAnthropic

	key, err := ResolveAPIKey(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-test", key)
}

func TestResolveAPIKey_BadDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Secrets.Driver = "vault"
	_, err := ResolveAPIKey(context.Background(), cfg)
	assert.Equal(t, KindMissingCredential, KindOf(err))
}

func TestNewServiceFromConfig(t *testing.T) {
	t.Setenv(constants.EnvOpenAIKey, "sk-test")
	svc, err := NewServiceFromConfig(context.Background(), config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, constants.ProviderOpenAI, svc.completer.ID())
	assert.Equal(t, constants.DefaultModel, svc.opts.Model)
}

func TestNewServiceFromConfig_UnknownProvider(t *testing.T) {
	t.Setenv(constants.EnvOpenAIKey, "sk-test")
	cfg := config.Default()
	cfg.Completion.Provider = "mistral"
	_, err := NewServiceFromConfig(context.Background(), cfg, nil)
	assert.Error(t, err)
}
