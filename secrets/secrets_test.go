package secrets

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/awantoch/flowsketch/config"
)

func TestEnvSecretsProvider(t *testing.T) {
	ctx := context.Background()
	t.Setenv("TEST_SECRET", "test_value")
	t.Setenv("FLOWSKETCH_API_KEY", "api_key_value")
	t.Setenv("BLANK_SECRET", "   ")

	t.Run("WithoutPrefix", func(t *testing.T) {
		provider := NewEnvSecretsProvider("")

		value, err := provider.GetSecret(ctx, "TEST_SECRET")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if value != "test_value" {
			t.Fatalf("Expected 'test_value', got '%s'", value)
		}

		_, err = provider.GetSecret(ctx, "NON_EXISTENT")
		if !errors.Is(err, ErrSecretNotFound) {
			t.Fatalf("Expected ErrSecretNotFound, got %v", err)
		}
	})

	t.Run("WithPrefix", func(t *testing.T) {
		provider := NewEnvSecretsProvider("FLOWSKETCH_")
		value, err := provider.GetSecret(ctx, "API_KEY")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if value != "api_key_value" {
			t.Fatalf("Expected 'api_key_value', got '%s'", value)
		}
	})

	t.Run("FallbackWithoutPrefix", func(t *testing.T) {
		provider := NewEnvSecretsProvider("MISSING_")
		value, err := provider.GetSecret(ctx, "TEST_SECRET")
		if err != nil {
			t.Fatalf("Expected no error with fallback, got %v", err)
		}
		if value != "test_value" {
			t.Fatalf("Expected 'test_value', got '%s'", value)
		}
	})

	t.Run("BlankIsMissing", func(t *testing.T) {
		provider := NewEnvSecretsProvider("")
		if _, err := provider.GetSecret(ctx, "BLANK_SECRET"); err == nil {
			t.Fatal("Expected error for blank secret")
		}
	})

	t.Run("Close", func(t *testing.T) {
		if err := NewEnvSecretsProvider("").Close(); err != nil {
			t.Fatalf("Expected no error on close, got %v", err)
		}
	})
}

func TestNewSecretsProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultToEnv", func(t *testing.T) {
		provider, err := NewSecretsProvider(ctx, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if _, ok := provider.(*EnvSecretsProvider); !ok {
			t.Fatalf("Expected EnvSecretsProvider, got %T", provider)
		}
	})

	t.Run("EnvDriver", func(t *testing.T) {
		provider, err := NewSecretsProvider(ctx, &config.SecretsConfig{Driver: "env", Prefix: "X_"})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if p, ok := provider.(*EnvSecretsProvider); !ok || p.prefix != "X_" {
			t.Fatalf("Expected prefixed EnvSecretsProvider, got %#v", provider)
		}
	})

	t.Run("AWSWithoutRegion", func(t *testing.T) {
		if _, err := NewSecretsProvider(ctx, &config.SecretsConfig{Driver: "aws-sm"}); err == nil {
			t.Fatal("Expected error for missing region")
		}
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		if _, err := NewSecretsProvider(ctx, &config.SecretsConfig{Driver: "vault"}); err == nil {
			t.Fatal("Expected error for unsupported driver")
		}
	})
}

type fakeSecretsManager struct {
	values   map[string]string
	err      error
	requests []string
}

func (f *fakeSecretsManager) GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	name := aws.ToString(in.SecretId)
	f.requests = append(f.requests, name)
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.values[name]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: aws.String("not found")}
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(v)}, nil
}

func TestAWSSecretsProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("Prefixed", func(t *testing.T) {
		fake := &fakeSecretsManager{values: map[string]string{"prod/OPENAI_API_KEY": "sk-1"}}
		p := &AWSSecretsProvider{client: fake, prefix: "prod/"}
		v, err := p.GetSecret(ctx, "OPENAI_API_KEY")
		if err != nil || v != "sk-1" {
			t.Fatalf("expected sk-1, got %q (%v)", v, err)
		}
	})

	t.Run("FallbackWithoutPrefix", func(t *testing.T) {
		fake := &fakeSecretsManager{values: map[string]string{"OPENAI_API_KEY": "sk-2"}}
		p := &AWSSecretsProvider{client: fake, prefix: "prod/"}
		v, err := p.GetSecret(ctx, "OPENAI_API_KEY")
		if err != nil || v != "sk-2" {
			t.Fatalf("expected sk-2, got %q (%v)", v, err)
		}
		if len(fake.requests) != 2 {
			t.Errorf("expected 2 lookups, got %v", fake.requests)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		p := &AWSSecretsProvider{client: &fakeSecretsManager{}}
		_, err := p.GetSecret(ctx, "MISSING")
		if !errors.Is(err, ErrSecretNotFound) {
			t.Fatalf("expected ErrSecretNotFound, got %v", err)
		}
	})

	t.Run("ServiceErrorNoFallback", func(t *testing.T) {
		fake := &fakeSecretsManager{err: errors.New("access denied")}
		p := &AWSSecretsProvider{client: fake, prefix: "prod/"}
		_, err := p.GetSecret(ctx, "KEY")
		if err == nil || errors.Is(err, ErrSecretNotFound) {
			t.Fatalf("expected service error, got %v", err)
		}
		if len(fake.requests) != 1 {
			t.Errorf("expected no fallback lookup, got %v", fake.requests)
		}
	})
}
