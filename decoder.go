package main

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/branila/puzzlescraper/lzstring"
)

// ErrEmptyPayload is returned when a blob decompresses to nothing
var ErrEmptyPayload = errors.New("empty puzzle payload")

// Handles puzzle blob decoding
type PayloadDecoder struct{}

// Creates a new payload decoder
func NewPayloadDecoder() *PayloadDecoder {
	return &PayloadDecoder{}
}

// Decodes a puzzle blob into JSON.
//
// Blobs containing '%' are percent escaped lz-string data. Anything else is
// the newer format: base64 of percent escaped UTF-8 JSON.
func (d *PayloadDecoder) Decode(blob string) ([]byte, error) {
	blob = strings.TrimSpace(blob)
	if blob == "" {
		return nil, ErrEmptyPayload
	}

	var text string
	if strings.Contains(blob, "%") {
		res := lzstring.Decompress(lzstring.UnescapeUnits(blob))
		switch res.Kind() {
		case lzstring.Empty:
			return nil, ErrEmptyPayload
		case lzstring.Text:
			text = res.Text()
		default:
			return nil, fmt.Errorf("failed to decompress payload: %w", res.Err())
		}
	} else {
		raw, err := base64.StdEncoding.DecodeString(blob)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
		}
		text = lzstring.Unescape(string(raw))
	}

	data := []byte(text)
	if !json.Valid(data) {
		return nil, fmt.Errorf("payload is not valid JSON (%d bytes)", len(data))
	}

	return data, nil
}

// Finds the blob in a page and decodes it. Input without a recognisable
// script assignment is taken to be the blob itself.
func (d *PayloadDecoder) DecodePage(page string) ([]byte, error) {
	blob, err := ExtractPayload(page)
	if errors.Is(err, ErrNoPayload) {
		blob = page
	}
	return d.Decode(blob)
}

// Decodes a blob and unmarshals the puzzle it holds
func (d *PayloadDecoder) DecodePuzzle(page string) (*Puzzle, []byte, error) {
	data, err := d.DecodePage(page)
	if err != nil {
		return nil, nil, err
	}

	var puzzle Puzzle
	if err := json.Unmarshal(data, &puzzle); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal puzzle: %w", err)
	}

	return &puzzle, data, nil
}
