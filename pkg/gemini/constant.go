package gemini

import "time"

const (
	// DefaultModel is the default Gemini model
	DefaultModel = "gemini-2.5-flash"

	// DefaultAPIURL is the default Gemini API endpoint
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultTimeout is the default HTTP client timeout. Streaming calls are
	// bounded by the caller's context instead.
	DefaultTimeout = 30 * time.Second

	// RoleUser and RoleModel are the only roles Gemini accepts in contents.
	RoleUser  = "user"
	RoleModel = "model"

	ssePrefix    = "data:"
	maxFrameSize = 1 << 20
)
