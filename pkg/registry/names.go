package registry

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/matzehuels/depviz/pkg/errors"
)

// maxNameLen bounds package names before they are placed in request URLs.
const maxNameLen = 214

var (
	// npm: lowercase, optionally scoped, no leading dot or underscore.
	npmName = regexp.MustCompile(`^(@[a-z0-9-~][a-z0-9-._~]*/)?[a-z0-9-~][a-z0-9-._~]*$`)

	// crates.io: ASCII letter first, then letters, digits, '-' or '_', at most 64.
	crateName = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]{0,63}$`)
)

// ValidateName checks name against the naming rules of kind. Names for
// [Local] and [Unknown] only get the URL safety checks. Errors carry the
// INVALID_PACKAGE code.
func ValidateName(kind Kind, name string) error {
	if err := checkSafe(name); err != nil {
		return errors.New(errors.ErrCodeInvalidPackage, "package name %q: %s", name, err)
	}
	switch kind {
	case Npm:
		if strings.ToLower(name) != name {
			return errors.New(errors.ErrCodeInvalidPackage, "npm package names must be lowercase: %q", name)
		}
		if !npmName.MatchString(name) {
			return errors.New(errors.ErrCodeInvalidPackage, "invalid npm package name: %q", name)
		}
	case CratesIO:
		if !crateName.MatchString(name) {
			return errors.New(errors.ErrCodeInvalidPackage, "invalid crates.io package name: %q", name)
		}
	}
	return nil
}

// checkSafe rejects names that are empty, oversized, or could escape the
// package path of a registry URL.
func checkSafe(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("empty")
	case len(name) > maxNameLen:
		return fmt.Errorf("longer than %d bytes", maxNameLen)
	case strings.IndexFunc(name, unicode.IsControl) >= 0:
		return fmt.Errorf("contains control characters")
	}
	for _, bad := range []string{"..", "//", `\`, "?", "#"} {
		if strings.Contains(name, bad) {
			return fmt.Errorf("contains %q", bad)
		}
	}
	return nil
}
