package conversation

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/target"
)

// defaultResponsePaths are probed when no configured rule matches. Covers
// the reply field names agent frameworks commonly use.
var defaultResponsePaths = []string{
	"response", "message", "output", "reply", "content", "text", "answer",
}

// ExtractChatResponse pulls the normalized textual reply out of a raw target
// API response. Configured rule paths are tried first, in order; then common
// reply fields; failing both, the whole payload is returned as a string.
func ExtractChatResponse(raw []byte, rules []target.Rule) string {
	body := string(raw)

	if !gjson.Valid(body) {
		return strings.TrimSpace(body)
	}

	for _, rule := range rules {
		if rule.Path == "" {
			continue
		}
		if v := gjson.Get(body, rule.Path); v.Exists() {
			return v.String()
		}
	}

	for _, path := range defaultResponsePaths {
		if v := gjson.Get(body, path); v.Exists() && v.Type == gjson.String {
			return v.String()
		}
	}

	return strings.TrimSpace(body)
}
