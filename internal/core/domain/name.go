package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule violation codes reported by ValidateName.
const (
	NameRuleEmpty          = "empty_name"
	NameRuleTooShort       = "too_short"
	NameRuleTooLong        = "too_long"
	NameRuleInvalidChars   = "invalid_characters"
	NameRuleReservedName   = "reserved_name"
	NameRuleReservedPrefix = "reserved_prefix"
)

const (
	minNameLength = 2
	maxNameLength = 50
)

var (
	allowedNamePattern = regexp.MustCompile(`^[A-Za-z0-9_ -]+$`)
	whitespaceRuns     = regexp.MustCompile(`\s+`)

	reservedNames    = []string{"SYSTEM", "ROOT", "NULL", "UNDEFINED"}
	reservedPrefixes = []string{"SYS_", "INTERNAL_"}
)

// NameValidationError represents a single role-name rule violation.
type NameValidationError struct {
	Code    string
	Message string
}

// Error implements error for NameValidationError.
func (e *NameValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// NormalizeName trims the candidate and collapses internal whitespace runs to
// single spaces. Normalization is idempotent.
func NormalizeName(raw string) string {
	return whitespaceRuns.ReplaceAllString(strings.TrimSpace(raw), " ")
}

// ValidateName checks a candidate role name against the naming rules and
// returns the normalized form on success. It is pure and safe for concurrent
// use: validating an already-normalized name yields the same name.
func ValidateName(raw string) (string, error) {
	name := NormalizeName(raw)
	if name == "" {
		return "", &NameValidationError{
			Code:    NameRuleEmpty,
			Message: "role name cannot be blank",
		}
	}

	if length := len([]rune(name)); length < minNameLength {
		return "", &NameValidationError{
			Code:    NameRuleTooShort,
			Message: fmt.Sprintf("role name must be at least %d characters long", minNameLength),
		}
	} else if length > maxNameLength {
		return "", &NameValidationError{
			Code:    NameRuleTooLong,
			Message: fmt.Sprintf("role name cannot exceed %d characters", maxNameLength),
		}
	}

	if !allowedNamePattern.MatchString(name) {
		return "", &NameValidationError{
			Code:    NameRuleInvalidChars,
			Message: "role name can only contain letters, numbers, spaces, hyphens and underscores",
		}
	}

	upper := strings.ToUpper(name)
	for _, reserved := range reservedNames {
		if upper == reserved {
			return "", &NameValidationError{
				Code:    NameRuleReservedName,
				Message: fmt.Sprintf("role name %q is reserved and cannot be used", name),
			}
		}
	}

	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(upper, prefix) {
			return "", &NameValidationError{
				Code:    NameRuleReservedPrefix,
				Message: fmt.Sprintf("role name cannot start with system prefixes (%s)", strings.Join(reservedPrefixes, ", ")),
			}
		}
	}

	return name, nil
}
