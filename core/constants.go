package core

// HTTP-related constants for REST operations

// HTTP Header Names
const (
	HeaderAccept        = "Accept"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderUserAgent     = "User-Agent"
	HeaderXRequestID    = "X-Request-Id"
)

// HTTP Content Types
const (
	ContentTypeJSON          = "application/json"
	ContentTypeMultipartForm = "multipart/form-data"
	ContentTypeOpenAPI       = "application/openapi+json"
	ContentTypeTextPlain     = "text/plain"
	ContentTypeOctetStream   = "application/octet-stream"
)

// HTTP Authentication Types
const (
	AuthTypeBasic  = "Basic"
	AuthTypeBearer = "Bearer"
)

// Defaults applied by NewAdminRest validators.
const (
	DefaultApiPrefix      = "/api"
	DefaultMaxConnections = 10
	DefaultPageLimit      = 10
)
