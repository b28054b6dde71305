package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"elliott/internal/adapters"
	"elliott/internal/app"
	"elliott/internal/core"
	"elliott/internal/types"
)

type rootOptions struct {
	ConfigFile        string
	LogLevel          string
	Verbose           bool
	Advisory          string
	OnError           string
	ErrataURL         string
	BugzillaBin       string
	BugzillaURL       string
	Product           string
	Status            string
	Versions          []string
	Auth              string
	ErrataUser        string
	ErrataPassword    string
	ErrataToken       string
	Krb5Conf          string
	Krb5CCache        string
	Krb5SPN           string
	HTTPTimeoutSec    int
	HTTPRetries       int
	HTTPRetryDelayMs  int
	CommandTimeoutSec int
}

func addConnectionFlags(cmd *cobra.Command, opts *rootOptions) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.Advisory, "advisory", "", "ID of the advisory to operate on")
	flags.StringVar(&opts.OnError, "on-error", string(types.FailurePolicyAbort), "Per-bug failure policy (abort or continue)")
	flags.StringVar(&opts.ErrataURL, "errata-url", adapters.DefaultErrataURL, "Errata Tool base URL")
	flags.StringVar(&opts.BugzillaBin, "bugzilla-bin", "bugzilla", "Path to the bugzilla command-line tool")
	flags.StringVar(&opts.BugzillaURL, "bugzilla-url", core.DefaultBugzillaURL, "Bugzilla buglist.cgi URL")
	flags.StringVar(&opts.Product, "product", core.DefaultProduct, "Bugzilla product to search")
	flags.StringVar(&opts.Status, "status", core.DefaultStatus, "Bug status to search for")
	flags.StringSliceVar(&opts.Versions, "version", nil, "Acceptable bug versions (defaults to the built-in 3.x list)")
	flags.StringVar(&opts.Auth, "auth", string(types.AuthMethodKerberos), "Errata auth method (kerberos, basic, token, none)")
	flags.StringVar(&opts.ErrataUser, "errata-user", "", "Errata username for basic auth")
	flags.StringVar(&opts.ErrataPassword, "errata-password", "", "Errata password for basic auth")
	flags.StringVar(&opts.ErrataToken, "errata-token", "", "Errata bearer token for token auth")
	flags.StringVar(&opts.Krb5Conf, "krb5-conf", "", "krb5.conf path (defaults to $KRB5_CONFIG or /etc/krb5.conf)")
	flags.StringVar(&opts.Krb5CCache, "krb5-ccache", "", "Kerberos credential cache (defaults to $KRB5CCNAME)")
	flags.StringVar(&opts.Krb5SPN, "krb5-spn", "", "Kerberos service principal (defaults to HTTP/<errata host>)")
	flags.IntVar(&opts.HTTPTimeoutSec, "http-timeout", 60, "Errata HTTP timeout in seconds (0 = default)")
	flags.IntVar(&opts.HTTPRetries, "http-retries", 0, "Retries for transient Errata failures")
	flags.IntVar(&opts.HTTPRetryDelayMs, "http-retry-delay-ms", 200, "Errata retry base delay in ms (0 = default)")
	flags.IntVar(&opts.CommandTimeoutSec, "command-timeout", 300, "Timeout per bugzilla invocation in seconds (0 = default)")
	_ = viper.BindPFlag("advisory", flags.Lookup("advisory"))
	_ = viper.BindPFlag("on_error", flags.Lookup("on-error"))
	_ = viper.BindPFlag("errata_url", flags.Lookup("errata-url"))
	_ = viper.BindPFlag("bugzilla_bin", flags.Lookup("bugzilla-bin"))
	_ = viper.BindPFlag("bugzilla_url", flags.Lookup("bugzilla-url"))
	_ = viper.BindPFlag("query.product", flags.Lookup("product"))
	_ = viper.BindPFlag("query.status", flags.Lookup("status"))
	_ = viper.BindPFlag("query.versions", flags.Lookup("version"))
	_ = viper.BindPFlag("auth", flags.Lookup("auth"))
	_ = viper.BindPFlag("errata_user", flags.Lookup("errata-user"))
	_ = viper.BindPFlag("errata_password", flags.Lookup("errata-password"))
	_ = viper.BindPFlag("errata_token", flags.Lookup("errata-token"))
	_ = viper.BindPFlag("krb5_conf", flags.Lookup("krb5-conf"))
	_ = viper.BindPFlag("krb5_ccache", flags.Lookup("krb5-ccache"))
	_ = viper.BindPFlag("krb5_spn", flags.Lookup("krb5-spn"))
	_ = viper.BindPFlag("http_timeout_sec", flags.Lookup("http-timeout"))
	_ = viper.BindPFlag("http_retries", flags.Lookup("http-retries"))
	_ = viper.BindPFlag("http_retry_delay_ms", flags.Lookup("http-retry-delay-ms"))
	_ = viper.BindPFlag("command_timeout_sec", flags.Lookup("command-timeout"))
}

func (o *rootOptions) service(cmd *cobra.Command) (app.Service, error) {
	return app.NewService(app.Config{
		BugzillaBinary:    resolveString(cmd, o.BugzillaBin, "bugzilla_bin", "bugzilla-bin"),
		CommandTimeoutSec: resolveInt(cmd, o.CommandTimeoutSec, "command_timeout_sec", "command-timeout"),
		Errata: adapters.ErrataConfig{
			Endpoint:     resolveString(cmd, o.ErrataURL, "errata_url", "errata-url"),
			TimeoutSec:   resolveInt(cmd, o.HTTPTimeoutSec, "http_timeout_sec", "http-timeout"),
			Retries:      resolveInt(cmd, o.HTTPRetries, "http_retries", "http-retries"),
			RetryDelayMs: resolveInt(cmd, o.HTTPRetryDelayMs, "http_retry_delay_ms", "http-retry-delay-ms"),
		},
		Credentials: adapters.CredentialsConfig{
			Method:      types.AuthMethod(resolveString(cmd, o.Auth, "auth", "auth")),
			Username:    resolveString(cmd, o.ErrataUser, "errata_user", "errata-user"),
			Password:    resolveString(cmd, o.ErrataPassword, "errata_password", "errata-password"),
			Token:       resolveString(cmd, o.ErrataToken, "errata_token", "errata-token"),
			Krb5Config:  resolveString(cmd, o.Krb5Conf, "krb5_conf", "krb5-conf"),
			Krb5CCache:  resolveString(cmd, o.Krb5CCache, "krb5_ccache", "krb5-ccache"),
			ServiceName: resolveString(cmd, o.Krb5SPN, "krb5_spn", "krb5-spn"),
		},
	})
}

func (o *rootOptions) advisory(cmd *cobra.Command) string {
	return resolveString(cmd, o.Advisory, "advisory", "advisory")
}

func (o *rootOptions) policy(cmd *cobra.Command) types.FailurePolicy {
	return types.FailurePolicy(resolveString(cmd, o.OnError, "on_error", "on-error"))
}

func (o *rootOptions) verbose(cmd *cobra.Command) bool {
	return resolveBool(cmd, o.Verbose, "verbose", "verbose")
}

func (o *rootOptions) filter(cmd *cobra.Command) types.BugFilter {
	return types.BugFilter{
		BaseURL:  resolveString(cmd, o.BugzillaURL, "bugzilla_url", "bugzilla-url"),
		Product:  resolveString(cmd, o.Product, "query.product", "product"),
		Status:   resolveString(cmd, o.Status, "query.status", "status"),
		Versions: resolveStrings(cmd, o.Versions, "query.versions", "version"),
	}
}
