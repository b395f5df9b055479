package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the caller's
// JWT on inbound requests.
const AccessTokenHeaderName = "access_token"

// TokenSize is the number of random bytes behind a bucket access token.
// Hex encoding doubles it to 64 characters.
const TokenSize = 32
