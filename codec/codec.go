// Package codec turns a full prediction state into a compact URL-safe token
// and back: canonical JSON, deflate-compressed, base64url without padding.
// The token is meant to live in a URL fragment (#p=<token>) or a QR code.
package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/germarr/static-worldcup/models"
)

// ErrInvalidToken is returned, wrapped with the failing stage, whenever any
// decode stage fails. Callers must treat it as "no prediction state
// available" and keep whatever state they already hold.
var ErrInvalidToken = errors.New("invalid prediction token")

// Encode serializes a pick state into a shareable token.
func Encode(state *models.PickState) (string, error) {
	if state == nil {
		state = models.NewPickState()
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshal pick state: %w", err)
	}

	var buf bytes.Buffer
	zw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("init compressor: %w", err)
	}
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("compress pick state: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("flush compressor: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode restores a pick state from a token. The result is always
// normalized: absent optional fields come back as empty mappings, never nil.
func Decode(token string) (*models.PickState, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	// Tolerate padded input from callers that re-encoded with a standard
	// base64 alphabet variant.
	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(token, "="))
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrInvalidToken, err)
	}

	zr := flate.NewReader(bytes.NewReader(compressed))
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: deflate: %v", ErrInvalidToken, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrInvalidToken)
	}

	state := &models.PickState{}
	if err := json.Unmarshal(trimmed, state); err != nil {
		return nil, fmt.Errorf("%w: json: %v", ErrInvalidToken, err)
	}

	state.Normalize()
	return state, nil
}
