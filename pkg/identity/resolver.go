package identity

import (
	"net/mail"
	"strings"

	"github.com/brightline/portald/pkg/logging"
)

// Resolver normalizes authenticated email addresses to the canonical form
// used as the staff-directory key: lower-cased, alias-resolved, and verified
// to belong to the organizational domain.
//
// The alias table maps external addresses (e.g. a partner organization's
// account) to primary network addresses. The domain check runs after alias
// substitution so that mapped partner addresses pass.
type Resolver struct {
	domain  string
	aliases map[string]string
}

// NewResolver creates a Resolver for the given organizational domain.
// The alias table is copied; keys and values are lower-cased.
func NewResolver(domain string, aliases map[string]string) *Resolver {
	normalized := make(map[string]string, len(aliases))
	for from, to := range aliases {
		normalized[strings.ToLower(from)] = strings.ToLower(to)
	}
	return &Resolver{
		domain:  strings.ToLower(strings.TrimPrefix(domain, "@")),
		aliases: normalized,
	}
}

// Resolve returns the canonical address for a raw authenticated address.
// Returns ErrMalformedAddress for syntactically invalid input and
// ErrDomainRejected when the resolved address is outside the domain.
func (r *Resolver) Resolve(rawEmail string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(rawEmail))
	if err != nil {
		return "", ErrMalformedAddress
	}

	email := strings.ToLower(addr.Address)
	if primary, ok := r.aliases[email]; ok {
		logging.App.Debugw("resolved email alias", "alias", email, "primary", primary)
		email = primary
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || email[at+1:] != r.domain {
		logging.Access.LogAuth("resolve", email, "domain_rejected")
		return "", ErrDomainRejected
	}

	return email, nil
}

// Canonicalize lower-cases and alias-resolves an address without the domain
// check. Used where the address is already trusted (e.g. directory rows).
func (r *Resolver) Canonicalize(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if primary, ok := r.aliases[email]; ok {
		return primary
	}
	return email
}
