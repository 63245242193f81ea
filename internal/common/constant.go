package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// TokenEnvName is the environment variable the CLI reads the access token from
// when -t is not given.
const TokenEnvName = "RPGKEEPER_TOKEN"
