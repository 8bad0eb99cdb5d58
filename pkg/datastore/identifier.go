package datastore

import (
	"fmt"
	"regexp"
	"strings"
)

// tableNamePattern is the allow-list for identifiers that end up interpolated
// into SQL statement text. Values are always bound as parameters; the
// identifier itself cannot be, so it must pass this check instead.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier rejects empty identifiers. Meaning and uniqueness of the
// identifier are store-defined.
func ValidateIdentifier(identifier string) error {
	if strings.TrimSpace(identifier) == "" {
		return fmt.Errorf("%w: identifier is required", ErrInvalidIdentifier)
	}
	return nil
}

// ValidateTableName enforces the SQL identifier allow-list in addition to the
// non-empty check.
func ValidateTableName(name string) error {
	if err := ValidateIdentifier(name); err != nil {
		return err
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("%w: table name %q is not a valid SQL identifier", ErrInvalidIdentifier, name)
	}
	return nil
}
