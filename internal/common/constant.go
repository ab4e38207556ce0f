package common

// AuthorizationHeaderName is the HTTP header (and gRPC metadata key, which
// is always lower case) carrying the bearer credential.
const AuthorizationHeaderName = "authorization"

// BearerScheme is the only credential scheme the server accepts.
const BearerScheme = "Bearer"

// SecretEnvName and LegacySecretEnvName are consulted, in that order, for the
// token signing secret at startup.
const (
	SecretEnvName       = "NOTEKEEPER_SECRET"
	LegacySecretEnvName = "SECRET"
)
