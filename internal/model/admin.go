package model

// Admin is an entry of the admin allowlist, keyed by e-mail.
type Admin struct {
	Email   string
	IsAdmin bool
}
