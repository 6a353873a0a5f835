// Package validation checks candidate credentials against a password policy
// before anything is hashed or stored.
package validation

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/credkeeper/internal/common"
)

// Rule violations. All of them wrap common.ErrorValidation.
var (
	ErrEmptyUsername            = fmt.Errorf("%w: username must not be empty", common.ErrorValidation)
	ErrPasswordTooShort         = fmt.Errorf("%w: password is too short", common.ErrorValidation)
	ErrPasswordMissingDigit     = fmt.Errorf("%w: password must contain at least one digit", common.ErrorValidation)
	ErrPasswordMissingUppercase = fmt.Errorf("%w: password must contain at least one uppercase letter", common.ErrorValidation)
	ErrPasswordMissingLowercase = fmt.Errorf("%w: password must contain at least one lowercase letter", common.ErrorValidation)
	ErrPasswordMissingSpecial   = fmt.Errorf("%w: password must contain at least one special character", common.ErrorValidation)
)

// SpecialCharacters is the set accepted by Policy.RequireSpecial.
const SpecialCharacters = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// Policy configures the password rules. MinLength counts bytes.
type Policy struct {
	MinLength        int
	RequireDigit     bool
	RequireUppercase bool
	RequireLowercase bool
	RequireSpecial   bool
}

// DefaultPolicy requires at least 8 characters including one digit.
func DefaultPolicy() Policy {
	return Policy{
		MinLength:    8,
		RequireDigit: true,
	}
}

type Validator struct {
	policy Policy
}

func NewValidator(p Policy) *Validator {
	return &Validator{policy: p}
}

func (v *Validator) Policy() Policy {
	return v.policy
}

// Validate applies the rules in a fixed order and returns the first
// violation: username, length, digit, uppercase, lowercase, special.
// The returned error never includes the password.
func (v *Validator) Validate(userName string, password []byte) error {
	if strings.TrimSpace(userName) == "" {
		return ErrEmptyUsername
	}

	if len(password) < v.policy.MinLength {
		return fmt.Errorf("%w (minimum %d characters)", ErrPasswordTooShort, v.policy.MinLength)
	}

	if v.policy.RequireDigit && !containsFunc(password, isASCIIDigit) {
		return ErrPasswordMissingDigit
	}
	if v.policy.RequireUppercase && !containsFunc(password, isASCIIUpper) {
		return ErrPasswordMissingUppercase
	}
	if v.policy.RequireLowercase && !containsFunc(password, isASCIILower) {
		return ErrPasswordMissingLowercase
	}
	if v.policy.RequireSpecial && !bytes.ContainsAny(password, SpecialCharacters) {
		return ErrPasswordMissingSpecial
	}

	return nil
}

func containsFunc(b []byte, f func(byte) bool) bool {
	for _, c := range b {
		if f(c) {
			return true
		}
	}
	return false
}

func isASCIIDigit(c byte) bool { return c >= '0' && c <= '9' }
func isASCIIUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isASCIILower(c byte) bool { return c >= 'a' && c <= 'z' }
