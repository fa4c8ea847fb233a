package validation

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Addresses need at least one letter or digit; punctuation alone is rejected.
var addressRe = regexp.MustCompile(`[\p{L}\p{N}]`)

var imageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func IsValidAddress(address string) bool {
	return !IsBlank(address) && addressRe.MatchString(address)
}

// IsPositiveAmount is true for amounts strictly greater than zero.
func IsPositiveAmount(d decimal.Decimal) bool {
	return d.Sign() > 0
}

// IsValidFrequency accepts the recurrence values stored for incomes and expenses.
func IsValidFrequency(f string) bool {
	return f == "monthly" || f == "yearly"
}

// IsImage checks the declared content type, falling back to the file
// extension when the client sent a generic type.
func IsImage(contentType, filename string) bool {
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if imageContentTypes[ct] {
		return true
	}
	if ct != "" && ct != "application/octet-stream" {
		return false
	}
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}
