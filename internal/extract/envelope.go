package extract

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Unwrap peels the wrapped transport envelope (a proxied HTTP event carrying
// the real request under "body", possibly base64-encoded) and returns the
// inner payload. Anything that does not look like that envelope passes
// through untouched, so directly invoked payloads keep working.
func Unwrap(raw []byte) ([]byte, error) {
	var probe struct {
		Body            *string `json:"body"`
		HTTPMethod      *string `json:"httpMethod"`
		IsBase64Encoded bool    `json:"isBase64Encoded"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return raw, nil
	}
	if probe.Body == nil || probe.HTTPMethod == nil {
		return raw, nil
	}
	if probe.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(*probe.Body)
		if err != nil {
			return nil, fmt.Errorf("invalid base64 envelope body: %w", err)
		}
		return decoded, nil
	}
	return []byte(*probe.Body), nil
}
