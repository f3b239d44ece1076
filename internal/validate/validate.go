// Package validate holds pure checks over target API responses.
package validate

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Sri-Krishna-R-Hebbar/NotHotDog/internal/target"
)

// ResponseFormat reports whether every field declared in outputFormat is
// present in the raw response. Nested maps require the nested fields too.
// An empty declaration accepts any response. Deterministic and side-effect
// free; neither argument is mutated.
func ResponseFormat(raw []byte, outputFormat map[string]any) bool {
	if len(outputFormat) == 0 {
		return true
	}
	if !gjson.ValidBytes(raw) {
		return false
	}
	return requiredFieldsPresent(string(raw), "", outputFormat)
}

func requiredFieldsPresent(body, prefix string, required map[string]any) bool {
	for key, decl := range required {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		v := gjson.Get(body, path)
		if !v.Exists() {
			return false
		}
		if nested, ok := decl.(map[string]any); ok {
			if !requiredFieldsPresent(body, path, nested) {
				return false
			}
		}
	}
	return true
}

// Condition reports whether every declared rule holds against the raw
// response. With no rules there is nothing to violate, so the result is
// true. A rule with no path is checked against the whole payload.
func Condition(raw []byte, rules []target.Rule) bool {
	for _, rule := range rules {
		if !ruleHolds(raw, rule) {
			return false
		}
	}
	return true
}

func ruleHolds(raw []byte, rule target.Rule) bool {
	var actual string
	if rule.Path == "" {
		actual = string(raw)
	} else {
		v := gjson.GetBytes(raw, rule.Path)
		if !v.Exists() {
			return false
		}
		actual = v.String()
	}

	switch strings.ToLower(rule.Condition) {
	case "", "exists":
		return true
	case "contains":
		return strings.Contains(actual, rule.Value)
	case "equals":
		return actual == rule.Value
	case "matches":
		re, err := regexp.Compile(rule.Value)
		if err != nil {
			return false
		}
		return re.MatchString(actual)
	default:
		// Unknown condition kinds fail closed.
		return false
	}
}
