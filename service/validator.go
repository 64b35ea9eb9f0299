package service

import "strings"

const (
	addressPrefix = "0x"
	addressLength = 42
)

// ValidateAddress reports whether input looks like a wallet address:
// a lowercase 0x prefix and 42 characters in total. The 40 characters
// after the prefix are not checked for hex digits.
func ValidateAddress(input string) bool {
	return len(input) == addressLength && strings.HasPrefix(input, addressPrefix)
}
