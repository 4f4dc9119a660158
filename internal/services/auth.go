package services

// AuthGate is the stateless admin credential check. The comparison is plain
// case-sensitive equality against the configured secret; an empty secret
// matches nothing, so a misconfigured deployment locks the door instead of
// leaving it open. Hashing and per-credential rate limiting are a known
// hardening gap.
type AuthGate struct {
	secret string
}

// NewAuthGate binds the gate to the configured admin password.
func NewAuthGate(secret string) *AuthGate { return &AuthGate{secret: secret} }

// Check reports whether the submitted password matches the configured secret.
func (g *AuthGate) Check(password string) bool {
	if g.secret == "" {
		return false
	}
	return password == g.secret
}
