package utils

import "github.com/microcosm-cc/bluemonday"

// Chat posts and bios are plain text, so strip all markup before storage.
// Templates escape on output regardless.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize removes any HTML from user supplied text.
func Sanitize(input string) string {
	return sanitizer.Sanitize(input)
}
