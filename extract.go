package main

import (
	"errors"
	"regexp"
)

// ErrNoPayload is returned when a page carries no embedded puzzle blob
var ErrNoPayload = errors.New("no puzzle payload in page")

// Inline script assignment holding the puzzle blob
var payloadPattern = regexp.MustCompile(`(pluribus|window\.gameData) *= *['"](?P<data>.*?)['"]`)

// Returns the embedded puzzle blob of a game page
func ExtractPayload(page string) (string, error) {
	m := payloadPattern.FindStringSubmatch(page)
	if m == nil {
		return "", ErrNoPayload
	}
	return m[payloadPattern.SubexpIndex("data")], nil
}
