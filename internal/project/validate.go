package project

import (
	"fmt"
	"regexp"
	"strings"
)

// nameRE is the accepted project name alphabet. Anything outside it,
// including path separators and whitespace, fails validation outright.
var nameRE = regexp.MustCompile(`^[a-zA-Z0-9_\-+.]+$`)

// InvalidNameError reports a project name that fails the character and
// path-traversal policy.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid project name %q: only alphanumeric characters, hyphens, "+
		"underscores, plus signs, and dots are allowed; must not start with '.' or contain '..'", e.Name)
}

// ValidateName accepts or rejects a candidate project name. It is the
// boundary guard against path traversal into the project storage directory
// and runs on every name supplied to load or resolve logic, not just on
// direct user input.
func ValidateName(name string) error {
	if name == "" ||
		strings.HasPrefix(name, ".") ||
		strings.Contains(name, "..") ||
		!nameRE.MatchString(name) {
		return &InvalidNameError{Name: name}
	}
	return nil
}
