package session

// Decision is the route guard's verdict for a navigation attempt.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Guard permits navigation when a session token is present and otherwise
// redirects to login. There is no role branching here; authorization is
// the backend's job.
func Guard(s *Store) Decision {
	if s.IsAuthenticated() {
		return Decision{Allowed: true}
	}
	return Decision{Allowed: false, RedirectTo: "login"}
}
