package llm

import (
	"encoding/json"
	"strings"

	"github.com/casamontes/mayordomo/internal/model"
)

// ParseClassification validates raw provider output against the structured
// contract. It never fails: malformed JSON degrades to an OTHER
// classification whose confirmation is the cleaned raw text, so the user
// still sees whatever the model said.
func ParseClassification(raw string) model.Classification {
	cleaned := cleanMarkdownWrapper(raw)

	var contract struct {
		Data     map[string]any `json:"data"`
		Category string         `json:"category"`
		Response string         `json:"response"`
	}

	if err := json.Unmarshal([]byte(cleaned), &contract); err != nil {
		return model.Classification{
			Category:     model.CategoryOther,
			Fields:       map[string]any{},
			Confirmation: cleaned,
		}
	}

	fields := contract.Data
	if fields == nil {
		fields = map[string]any{}
	}

	confirmation := contract.Response
	if confirmation == "" {
		confirmation = MsgDefaultAck
	}

	return model.Classification{
		Category:     model.ParseCategory(contract.Category),
		Fields:       fields,
		Confirmation: confirmation,
	}
}

// cleanMarkdownWrapper strips code fences some models insist on wrapping
// their JSON in.
func cleanMarkdownWrapper(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}
