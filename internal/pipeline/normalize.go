package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
)

// dateKeyHints mark a key as date-like when its lowercased form contains
// any of them.
var dateKeyHints = []string{"date", "issue", "expiry", "expires", "expiration"}

// dateLayouts are tried in order, first match wins. The order is load-bearing:
// it resolves ambiguous strings like 01/02/2020 as month/day/year.
var dateLayouts = []string{
	"01/02/2006",
	"02/01/2006",
	"2006/01/02",
	"01-02-2006",
	"02-01-2006",
	"2006-01-02",
}

const canonicalDateLayout = "2006-01-02"

// NormalizeFields canonicalizes date-like values to YYYY-MM-DD and splits
// composite name values into first_name/last_name. Pure and idempotent:
// already-canonical dates re-parse to themselves and split names carry
// first/last in their keys so they are never re-split.
func NormalizeFields(raw docModel.FieldMap) docModel.FieldMap {
	normalized := make(docModel.FieldMap, len(raw))

	// composite-name splits are applied after everything else so the
	// emitted first_name/last_name win regardless of map iteration order
	var nameSplits []string

	for key, value := range raw {
		strValue, isString := value.(string)
		if !isString {
			normalized[key] = value
			continue
		}

		lowerKey := strings.ToLower(key)
		switch {
		case isDateKey(lowerKey):
			normalized[key] = normalizeDate(strValue)
		case isCompositeNameKey(lowerKey, strValue):
			nameSplits = append(nameSplits, key)
		default:
			normalized[key] = value
		}
	}

	sort.Strings(nameSplits)
	for _, key := range nameSplits {
		parts := strings.SplitN(strings.TrimSpace(raw[key].(string)), " ", 2)
		if len(parts) == 2 {
			normalized["first_name"] = parts[0]
			normalized["last_name"] = parts[1]
		} else {
			// only edge whitespace; keep the single token under its own key
			normalized[key] = raw[key]
		}
	}

	return normalized
}

func isDateKey(lowerKey string) bool {
	for _, hint := range dateKeyHints {
		if strings.Contains(lowerKey, hint) {
			return true
		}
	}
	return false
}

func isCompositeNameKey(lowerKey string, value string) bool {
	return strings.Contains(lowerKey, "name") &&
		!strings.Contains(lowerKey, "first") &&
		!strings.Contains(lowerKey, "last") &&
		strings.Contains(value, " ")
}

// normalizeDate tries each accepted layout in order and rewrites the first
// match to YYYY-MM-DD. Unparseable values pass through untouched.
func normalizeDate(value string) string {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format(canonicalDateLayout)
		}
	}
	return value
}
