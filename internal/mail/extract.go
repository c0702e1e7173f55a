// internal/mail/extract.go
package mail

import (
	"regexp"
	"strings"
)

var (
	// Conservative RFC-5322-lite shape: local part, @, domain, dot, TLD of
	// at least two letters. Anything fancier (quoted locals, IP literals)
	// is rejected on purpose.
	addressPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

	// Cells hold one or more addresses separated by commas, semicolons or
	// whitespace; runs of separators collapse.
	cellSeparators = regexp.MustCompile(`[,;\s\n]+`)
)

// ValidAddress reports whether s matches the address pattern.
func ValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// ExtractAddresses parses a raw sheet cell into the ordered list of valid
// addresses it contains. Invalid tokens are dropped silently: partial
// extraction is expected, not an error. Duplicates are preserved; each
// occurrence becomes its own send.
func ExtractAddresses(cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}

	var addresses []string
	for _, candidate := range cellSeparators.Split(cell, -1) {
		candidate = strings.TrimSpace(candidate)
		if candidate != "" && ValidAddress(candidate) {
			addresses = append(addresses, candidate)
		}
	}
	return addresses
}
