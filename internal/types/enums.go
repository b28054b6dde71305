package types

type FailurePolicy string

const (
	FailurePolicyAbort    FailurePolicy = "abort"
	FailurePolicyContinue FailurePolicy = "continue"
)

type AuthMethod string

const (
	AuthMethodKerberos AuthMethod = "kerberos"
	AuthMethodBasic    AuthMethod = "basic"
	AuthMethodToken    AuthMethod = "token"
	AuthMethodNone     AuthMethod = "none"
)

type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)
