package common

const (
	// MaxRequestBody limits JSON request bodies for intake and survey endpoints.
	MaxRequestBody = 1 << 20
	// DefaultListLimit is the page size when the caller omits limit.
	DefaultListLimit = 100
	// MaxListLimit caps listing page sizes regardless of what the caller asks for.
	MaxListLimit = 1000
	// MaxMessageRunes limits free-text fields to keep payloads sane.
	MaxMessageRunes = 5000
)
