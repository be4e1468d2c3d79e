package constants

const (
	// ContextKeyUserID is the key used for the user ID in both the session and the gin context.
	ContextKeyUserID = "user_id"

	// ContextKeyRequestID is the gin context key holding the request ID.
	ContextKeyRequestID = "request_id"

	// HeaderRequestID is echoed back on every response.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyTask holds the task loaded by RequireTaskAccess.
	ContextKeyTask = "task"

	SessionCookieName = "task_session"

	MinUsernameLength = 4
	MaxUsernameLength = 150
	MinPasswordLength = 6

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	MaxAIGeneratedTasks = 20

	// DateLayout is the only accepted due date format.
	DateLayout = "2006-01-02"
)
