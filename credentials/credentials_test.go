package credentials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	creds := Credentials{
		AccessKey:    "AKID",
		SecretKey:    "SECRET",
		SessionToken: "TOKEN",
	}

	got, err := NewStatic(creds).Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, creds, got)
	assert.True(t, got.HasKeys())
	assert.True(t, got.HasSessionToken())
}

func TestStaticProviderMissingKeys(t *testing.T) {
	_, err := NewStatic(Credentials{AccessKey: "AKID"}).Retrieve(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestEnvProvider(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "SECRET")
	t.Setenv("AWS_SESSION_TOKEN", "TOKEN")

	got, err := FromEnv().Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKID", got.AccessKey)
	assert.Equal(t, "SECRET", got.SecretKey)
	assert.Equal(t, "TOKEN", got.SessionToken)
}

func TestEnvProviderUnset(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")

	_, err := FromEnv().Retrieve(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestStaticStore(t *testing.T) {
	store := NewStaticStore([]Credentials{
		{AccessKey: "AKID", SecretKey: "SECRET"},
		{AccessKey: "  PADDED  ", SecretKey: " ALSO "},
		{AccessKey: "INCOMPLETE"},
	})

	got, ok := store.Lookup("AKID")
	require.True(t, ok)
	assert.Equal(t, "SECRET", got.SecretKey)

	got, ok = store.Lookup("PADDED")
	require.True(t, ok, "keys should be trimmed on load")
	assert.Equal(t, "ALSO", got.SecretKey)

	_, ok = store.Lookup("INCOMPLETE")
	assert.False(t, ok, "entries without a secret key are skipped")

	_, ok = store.Lookup("UNKNOWN")
	assert.False(t, ok)
}
