package adapters

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/jcmturner/gokrb5/v8/client"
	"github.com/jcmturner/gokrb5/v8/config"
	"github.com/jcmturner/gokrb5/v8/credentials"
	"github.com/jcmturner/gokrb5/v8/spnego"

	"elliott/internal/ports"
	"elliott/internal/types"
)

const defaultKrb5Config = "/etc/krb5.conf"

type CredentialsConfig struct {
	Method      types.AuthMethod
	Username    string
	Password    string
	Token       string
	Krb5Config  string
	Krb5CCache  string
	ServiceName string
}

// NewCredentials picks the credential provider for cfg.Method. Kerberos is
// the default.
func NewCredentials(cfg CredentialsConfig) (ports.CredentialPort, error) {
	method := types.AuthMethod(strings.ToLower(strings.TrimSpace(string(cfg.Method))))
	switch method {
	case types.AuthMethodKerberos, "":
		return NewKerberosCredentials(cfg.Krb5Config, cfg.Krb5CCache, cfg.ServiceName), nil
	case types.AuthMethodBasic:
		if strings.TrimSpace(cfg.Username) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("errata user is required for basic auth")
		}
		return BasicCredentials{Username: cfg.Username, Password: cfg.Password}, nil
	case types.AuthMethodToken:
		if strings.TrimSpace(cfg.Token) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("errata token is required for token auth")
		}
		return TokenCredentials{Token: cfg.Token}, nil
	case types.AuthMethodNone:
		return NoCredentials{}, nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported auth method: %s", method))
	}
}

type NoCredentials struct{}

func (NoCredentials) Authorization(_ context.Context, _ string) (string, error) {
	return "", nil
}

type BasicCredentials struct {
	Username string
	Password string
}

func (c BasicCredentials) Authorization(_ context.Context, _ string) (string, error) {
	raw := c.Username + ":" + c.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

type TokenCredentials struct {
	Token string
}

func (c TokenCredentials) Authorization(_ context.Context, _ string) (string, error) {
	return "Bearer " + strings.TrimSpace(c.Token), nil
}

// KerberosCredentials negotiates SPNEGO tokens from an existing credential
// cache, the same way `kinit` followed by `curl --negotiate` would.
type KerberosCredentials struct {
	ConfigPath  string
	CCachePath  string
	ServiceName string
	client      *client.Client
}

func NewKerberosCredentials(configPath string, ccachePath string, serviceName string) *KerberosCredentials {
	if strings.TrimSpace(configPath) == "" {
		configPath = os.Getenv("KRB5_CONFIG")
	}
	if strings.TrimSpace(configPath) == "" {
		configPath = defaultKrb5Config
	}
	if strings.TrimSpace(ccachePath) == "" {
		ccachePath = defaultCCachePath()
	}
	return &KerberosCredentials{
		ConfigPath:  configPath,
		CCachePath:  ccachePath,
		ServiceName: strings.TrimSpace(serviceName),
	}
}

func (c *KerberosCredentials) Authorization(ctx context.Context, targetURL string) (string, error) {
	if err := c.login(); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid errata url").
			WithCause(err)
	}
	if err := spnego.SetSPNEGOHeader(c.client, req, c.ServiceName); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeUnauthenticated).
			WithMsg("failed to negotiate kerberos token").
			WithCause(err)
	}
	return req.Header.Get("Authorization"), nil
}

func (c *KerberosCredentials) login() error {
	if c.client != nil {
		return nil
	}
	cfg, err := config.Load(c.ConfigPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("failed to load kerberos config").
			WithCause(err)
	}
	ccache, err := credentials.LoadCCache(c.CCachePath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeUnauthenticated).
			WithMsg("failed to load kerberos credential cache (run kinit)").
			WithCause(err)
	}
	cl, err := client.NewFromCCache(ccache, cfg, client.DisablePAFXFAST(true))
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeUnauthenticated).
			WithMsg("failed to create kerberos client").
			WithCause(err)
	}
	c.client = cl
	return nil
}

func defaultCCachePath() string {
	if value := strings.TrimSpace(os.Getenv("KRB5CCNAME")); value != "" {
		return strings.TrimPrefix(value, "FILE:")
	}
	return fmt.Sprintf("/tmp/krb5cc_%d", os.Getuid())
}

var _ ports.CredentialPort = NoCredentials{}
var _ ports.CredentialPort = BasicCredentials{}
var _ ports.CredentialPort = TokenCredentials{}
var _ ports.CredentialPort = (*KerberosCredentials)(nil)
