// Package auth validates the x-api-key / x-group-name header pair against
// the configured credential set. The check is stateless and evaluated
// independently for every request; its only side effect is the audit event.
package auth

import (
	"crypto/subtle"
	"strings"

	"taxiapi/internal/domain"
	"taxiapi/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator holds the process-lifetime credential set.
type Authenticator struct {
	key     []byte
	keyHash []byte
	groups  map[string]struct{}
}

// New builds an Authenticator. keyHash is an optional bcrypt hash of the API
// key; when non-empty it takes precedence over the plaintext key. Group
// names are matched case-insensitively.
func New(key, keyHash string, groups []string) *Authenticator {
	a := &Authenticator{
		groups: make(map[string]struct{}, len(groups)),
	}
	if key != "" {
		a.key = []byte(key)
	}
	if keyHash != "" {
		a.keyHash = []byte(keyHash)
	}
	for _, g := range groups {
		g = strings.ToLower(strings.TrimSpace(g))
		if g != "" {
			a.groups[g] = struct{}{}
		}
	}
	return a
}

// Verify checks one credential pair and returns nil when authorized or a
// domain.AuthError tagged with the failure reason. Every decision emits an
// audit event (log line + counter) keyed by group and outcome.
func (a *Authenticator) Verify(requestID, key, group string) error {
	key = strings.TrimSpace(key)
	group = strings.ToLower(strings.TrimSpace(group))

	if key == "" || group == "" {
		return a.deny(requestID, group, domain.AuthMissingCredentials)
	}
	if !a.keyMatches(key) {
		return a.deny(requestID, group, domain.AuthInvalidKey)
	}
	if _, ok := a.groups[group]; !ok {
		return a.deny(requestID, group, domain.AuthInvalidGroup)
	}

	authDecisions.WithLabelValues(group, outcomeAuthorized).Inc()
	utils.LogEvent(requestID, "auth", "authorized", "group="+group)
	return nil
}

func (a *Authenticator) deny(requestID, group string, reason domain.AuthReason) error {
	authDecisions.WithLabelValues(group, string(reason)).Inc()
	utils.LogEvent(requestID, "auth", "denied", "group="+group+" reason="+string(reason))
	return domain.AuthError{Reason: reason}
}

func (a *Authenticator) keyMatches(candidate string) bool {
	if len(a.keyHash) > 0 {
		return bcrypt.CompareHashAndPassword(a.keyHash, []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare(a.key, []byte(candidate)) == 1
}
