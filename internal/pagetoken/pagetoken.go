// Package pagetoken encodes search pagination state as opaque tokens.
//
// A token is the base64 encoding of a small JSON document carrying the
// absolute offset into the result sequence. Clients must treat tokens as
// opaque, but the format is stable so tokens survive process restarts.
package pagetoken

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

type payload struct {
	Offset int `json:"offset"`
}

// Encode builds the token for an absolute result offset.
func Encode(offset int) string {
	data, _ := json.Marshal(payload{Offset: offset})
	return base64.StdEncoding.EncodeToString(data)
}

// Decode extracts the offset from a token. The empty token means the start
// of the sequence.
func Decode(token string) (int, error) {
	if token == "" {
		return 0, nil
	}
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, errors.New("Invalid page token, cannot base64-decode")
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return 0, errors.New("Invalid page token, cannot parse as JSON")
	}
	if p.Offset < 0 {
		return 0, errors.New("Invalid page token, offset cannot be negative")
	}
	return p.Offset, nil
}
