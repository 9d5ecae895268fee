package entity

// Caller is the authenticated identity attached to a request by the auth
// middleware. Handlers receive it explicitly; nothing looks it up globally.
type Caller struct {
	UserID    string
	Name      string
	Email     string
	SessionID string
}
