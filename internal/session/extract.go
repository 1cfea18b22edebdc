package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// fieldCandidates maps each canonical session field to the ordered list of
// keys the backend has been observed to use for it. The backend contract is
// uncontrolled and has shifted shape before, so extraction is declarative
// here instead of ad hoc fallbacks scattered through the call sites.
var fieldCandidates = map[string][]string{
	KeyRole:  {"role", "userRole", "authority", "authorities"},
	KeyEmail: {"email", "userEmail", "emailAddress", "sub"},
	KeyName:  {"name", "fullName", "username"},
}

// extractField resolves one canonical field from a decoded response: direct
// top-level candidate keys first, then a breadth-first search of nested
// objects for any candidate. Returns "" when nothing matches.
func extractField(payload map[string]interface{}, field string) string {
	candidates, ok := fieldCandidates[field]
	if !ok {
		return ""
	}

	for _, key := range candidates {
		if v := stringValue(payload[key]); v != "" {
			return v
		}
	}
	return deepFind(payload, candidates)
}

// deepFind walks the object breadth-first and returns the first non-empty
// value stored under any of the candidate keys.
func deepFind(root map[string]interface{}, keys []string) string {
	queue := []map[string]interface{}{root}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, key := range keys {
			if v := stringValue(current[key]); v != "" {
				return v
			}
		}
		for _, value := range current {
			switch child := value.(type) {
			case map[string]interface{}:
				queue = append(queue, child)
			case []interface{}:
				for _, elem := range child {
					if m, ok := elem.(map[string]interface{}); ok {
						queue = append(queue, m)
					}
				}
			}
		}
	}
	return ""
}

// stringValue coerces a decoded JSON value into a usable string. Arrays
// contribute their first string element (the "authorities" shape).
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case []interface{}:
		if len(val) > 0 {
			if s, ok := val[0].(string); ok {
				return s
			}
		}
	}
	return ""
}

// decodeTokenPayload decodes the middle segment of a JWT as base64url JSON.
// No signature verification happens here; the payload is only a fallback
// source of display fields, never an authorization decision.
func decodeTokenPayload(token string) (map[string]interface{}, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("token does not have three segments")
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("failed to decode token payload: %w", err)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("token payload is not JSON: %w", err)
	}
	return payload, nil
}
