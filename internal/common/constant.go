package common

// AuthorizationHeader is the HTTP header used to carry the bearer token on
// outbound requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader carries a per-request id so that client and server logs
// can be correlated.
const RequestIDHeader = "X-Request-Id"

// Keys under which the credential store persists local auth state.
const (
	TokenKey = "auth_token"
	UserKey  = "user_data"
)
