package vision

import (
	"fmt"
	"strings"

	"github.com/akolanti/DocScanAPI/internal/config"
	"github.com/akolanti/DocScanAPI/internal/domain/docModel"
)

// token budgets per stage: classification is a single label, extraction a
// small JSON object
const (
	ClassifyMaxTokens int64 = config.ClassifyMaxTokens
	ExtractMaxTokens  int64 = config.ExtractMaxTokens
)

// ClassifyPrompt asks for exactly one registry label, or "unknown".
func ClassifyPrompt() string {
	var labels []string
	for _, t := range docModel.RegisteredTypes() {
		labels = append(labels, string(t))
	}
	return "Analyze this image and identify what type of identification document it is.\n" +
		"Only respond with one of these categories: " + strings.Join(labels, ", ") + ".\n" +
		"If you cannot clearly identify the document type, respond with \"unknown\"."
}

// ExtractPrompt asks for a JSON object holding exactly the expected fields.
func ExtractPrompt(docType docModel.DocumentType, fields []string) string {
	return fmt.Sprintf("This is a %s. Extract the following fields: %s.\n"+
		"Format your response as a JSON object with keys and values.\n"+
		"Example:\n{\n    \"field_name\": \"value\"\n}",
		docType, strings.Join(fields, ", "))
}
