package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// parseResponse is a generic JSON response parser for subprocess output.
// It detects empty output and wraps unmarshal failures with errSentinel.
//
// Only the last non-empty line is parsed, so stray warnings printed before
// the JSON object do not break parsing.
//
// Usage:
//
//	resp, err := parseResponse[domain.MLClassification](stdout, trerrors.ErrMLUnavailable)
func parseResponse[T any](data []byte, errSentinel error) (*T, error) {
	data = lastJSONLine(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty response", errSentinel)
	}

	var resp T
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse json response (%d bytes): %w", errSentinel, len(data), err)
	}

	return &resp, nil
}

func lastJSONLine(data []byte) []byte {
	data = bytes.TrimSpace(data)
	if i := bytes.LastIndexByte(data, '\n'); i >= 0 {
		return bytes.TrimSpace(data[i+1:])
	}
	return data
}
