package utils

import "strings"

// keyReplacer swaps characters the store reserves in keys.
var keyReplacer = strings.NewReplacer(
	".", "_",
	"#", "_",
	"$", "_",
	"[", "_",
	"]", "_",
	"/", "_",
)

// SanitizeKey turns a phone number into the record key used for its profile.
func SanitizeKey(phone string) string {
	return keyReplacer.Replace(strings.TrimSpace(phone))
}
