// Package credentials implements the institutional login rule: a student's
// password is the PRN segment of their email address, and the single owner
// account uses a fixed token. The rule lives behind the Deriver interface so
// the order lifecycle code never learns how passwords are produced and a real
// hashed-credential check can replace it without touching anything else.
package credentials

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// OwnerToken is the fixed password of the owner account.
const OwnerToken = "canteen"

type Deriver interface {
	// Expected returns the password an email is required to present,
	// or ErrInvalidEmailFormat if the address is not a valid login.
	Expected(email string) (string, error)
}

// PRNDeriver derives passwords for firstname.<PRN>@<domain> addresses and
// special-cases the owner email.
type PRNDeriver struct {
	ownerEmail string
	domain     string
	pattern    *regexp.Regexp
}

func NewPRNDeriver(ownerEmail, domain string) *PRNDeriver {
	return &PRNDeriver{
		ownerEmail: ownerEmail,
		domain:     domain,
		pattern:    regexp.MustCompile(`^[a-zA-Z]+\.[0-9]+@` + regexp.QuoteMeta(domain) + `$`),
	}
}

func (d *PRNDeriver) Expected(email string) (string, error) {
	if email == d.ownerEmail {
		return OwnerToken, nil
	}
	if !d.pattern.MatchString(email) {
		return "", fmt.Errorf("%w: use firstname.PRN@%s", ErrInvalidEmailFormat, d.domain)
	}
	// firstname.<PRN>@domain: the PRN sits between the first dot and the @.
	rest := email[strings.Index(email, ".")+1:]
	return rest[:strings.Index(rest, "@")], nil
}

// Verify checks a supplied password against the derived one.
func Verify(d Deriver, email, password string) error {
	expected, err := d.Expected(email)
	if err != nil {
		return err
	}
	if password != expected {
		return fmt.Errorf("%w: password must match PRN", ErrInvalidCredentials)
	}
	return nil
}
