package contextkeys

// Context keys (use typed constants to avoid key collisions)
type contextKey string

const (
	UserClaimsKey contextKey = "userClaims"
)
