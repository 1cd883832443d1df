package interfaces

// Notifier pushes a realtime event to every live connection of the given
// logins. It never reports delivery failures.
type Notifier interface {
	NotifyUsers(identities []string, payload any)
}

type PresenceReader interface {
	IsOnline(login string) bool
}

// IdentityResolver maps a bearer token to the login of an active user.
type IdentityResolver interface {
	ResolveIdentity(token string) (string, error)
}
