// Package sanitizer normalizes user-entered fields before validation and
// persistence: whitespace collapsing for free text, E.164 formatting for
// mobile numbers, lowercasing for emails.
package sanitizer
