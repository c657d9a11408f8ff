package utils

import "github.com/microcosm-cc/bluemonday"

var (
	// Post and comment bodies keep user-generated markup minus anything
	// executable; titles carry no markup at all.
	bodySanitizer  = bluemonday.UGCPolicy()
	titleSanitizer = bluemonday.StrictPolicy()
)

// Sanitize cleans body HTML, stripping script and event handlers.
func Sanitize(input string) string {
	return bodySanitizer.Sanitize(input)
}

// SanitizeTitle strips all HTML from a title.
func SanitizeTitle(input string) string {
	return titleSanitizer.Sanitize(input)
}
