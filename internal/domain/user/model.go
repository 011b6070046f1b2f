package user

// Principal identifies the authenticated caller as reported by the
// accounts service.
type Principal struct {
	UserID string
	Email  string
}
