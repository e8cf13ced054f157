package services

import (
	"regexp"
	"strings"
)

var (
	boldMarkers    = regexp.MustCompile(`\*\*(.*?)\*\*`)
	headingMarkers = regexp.MustCompile(`(?m)^#+\s*`)
	bulletMarkers  = regexp.MustCompile(`(?m)^(\s*)\*\s+`)
)

// PlainText strips lightweight markdown emphasis from generated itineraries so
// the stored text renders cleanly as plain text.
//
//	"**Day 1:** Arrive"  -> "Day 1: Arrive"
//	"## Day 2"           -> "Day 2"
//	"* 9:00 AM Breakfast" -> "- 9:00 AM Breakfast"
//
// Day-indicating lines and timestamps pass through untouched.
func PlainText(raw string) string {
	text := boldMarkers.ReplaceAllString(raw, "$1")
	text = headingMarkers.ReplaceAllString(text, "")
	text = bulletMarkers.ReplaceAllString(text, "$1- ")
	return strings.TrimSpace(text)
}
