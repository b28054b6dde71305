package adapters

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"elliott/internal/types"
)

func TestNewCredentials(t *testing.T) {
	creds, err := NewCredentials(CredentialsConfig{Method: types.AuthMethodNone})
	require.NoError(t, err)
	header, err := creds.Authorization(context.Background(), "https://errata.example.com")
	require.NoError(t, err)
	assert.Empty(t, header)

	creds, err = NewCredentials(CredentialsConfig{Method: "BASIC", Username: "user", Password: "pass"})
	require.NoError(t, err)
	header, err = creds.Authorization(context.Background(), "https://errata.example.com")
	require.NoError(t, err)
	assert.Equal(t, "Basic dXNlcjpwYXNz", header)

	creds, err = NewCredentials(CredentialsConfig{Method: types.AuthMethodToken, Token: "abc"})
	require.NoError(t, err)
	header, err = creds.Authorization(context.Background(), "https://errata.example.com")
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", header)

	creds, err = NewCredentials(CredentialsConfig{})
	require.NoError(t, err)
	assert.IsType(t, &KerberosCredentials{}, creds)
}

func TestNewCredentialsInvalid(t *testing.T) {
	tests := []CredentialsConfig{
		{Method: types.AuthMethodBasic},
		{Method: types.AuthMethodToken},
		{Method: "ntlm"},
	}
	for _, cfg := range tests {
		_, err := NewCredentials(cfg)
		require.Error(t, err)
		assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	}
}

func TestKerberosCredentialsMissingConfig(t *testing.T) {
	dir := t.TempDir()
	creds := NewKerberosCredentials(filepath.Join(dir, "krb5.conf"), filepath.Join(dir, "ccache"), "")
	_, err := creds.Authorization(context.Background(), "https://errata.example.com")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestDefaultCCachePath(t *testing.T) {
	t.Setenv("KRB5CCNAME", "FILE:/tmp/krb5cc_test")
	assert.Equal(t, "/tmp/krb5cc_test", defaultCCachePath())
}
