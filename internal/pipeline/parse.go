package pipeline

import (
	"encoding/json"
	"strings"

	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
)

// parseFieldJSON decodes the extraction reply, tolerating a model that
// wraps its JSON in a fenced code block with an optional json language tag.
func parseFieldJSON(reply string) (docModel.FieldMap, error) {
	var fields docModel.FieldMap
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "json") {
		text = strings.TrimSpace(text[len("json"):])
	}
	return text
}
