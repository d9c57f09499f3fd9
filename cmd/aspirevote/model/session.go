package model

// Session is the caller identity: the role from the persisted user info and
// the bearer token, kept as separate values the way they are stored.
type Session struct {
	Role  Role
	Token string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}
