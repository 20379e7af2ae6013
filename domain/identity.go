// Package domain contains core concepts of the relay system.
// This file defines Identity rules and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"strings"

	"chat-relay/errors"
)

// NormalizeIdentity trims surrounding whitespace from a raw identity line.
// Identities are case-sensitive and compared by exact match; the only rule
// enforced here is non-emptiness.
func NormalizeIdentity(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", errors.ErrEmptyName
	}
	return name, nil
}
