package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casamontes/mayordomo/internal/model"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		wantFields       map[string]any
		name             string
		raw              string
		wantConfirmation string
		wantCategory     model.Category
	}{
		{
			name:             "well-formed expense",
			raw:              `{"category":"EXPENSE","data":{"amount":12.5,"description":"coffee"},"response":"ok"}`,
			wantCategory:     model.CategoryExpense,
			wantFields:       map[string]any{"amount": 12.5, "description": "coffee"},
			wantConfirmation: "ok",
		},
		{
			name:             "fenced json is unwrapped",
			raw:              "```json\n{\"category\":\"TASK\",\"data\":{\"description\":\"llamar al médico\"},\"response\":\"anotado\"}\n```",
			wantCategory:     model.CategoryTask,
			wantFields:       map[string]any{"description": "llamar al médico"},
			wantConfirmation: "anotado",
		},
		{
			name:             "malformed json degrades to raw text reply",
			raw:              `{"category":"EXPENSE","data":{"amount":12.5`,
			wantCategory:     model.CategoryOther,
			wantFields:       map[string]any{},
			wantConfirmation: `{"category":"EXPENSE","data":{"amount":12.5`,
		},
		{
			name:             "plain prose degrades to raw text reply",
			raw:              "Claro, puedo ayudarte con eso.",
			wantCategory:     model.CategoryOther,
			wantFields:       map[string]any{},
			wantConfirmation: "Claro, puedo ayudarte con eso.",
		},
		{
			name:             "missing category defaults to OTHER",
			raw:              `{"data":{},"response":"hola"}`,
			wantCategory:     model.CategoryOther,
			wantFields:       map[string]any{},
			wantConfirmation: "hola",
		},
		{
			name:             "unknown category collapses to OTHER",
			raw:              `{"category":"SHOPPING_LIST","data":{},"response":"hecho"}`,
			wantCategory:     model.CategoryOther,
			wantFields:       map[string]any{},
			wantConfirmation: "hecho",
		},
		{
			name:             "missing data defaults to empty map",
			raw:              `{"category":"PLANNING","response":"vamos por partes"}`,
			wantCategory:     model.CategoryPlanning,
			wantFields:       map[string]any{},
			wantConfirmation: "vamos por partes",
		},
		{
			name:             "missing response gets fixed acknowledgement",
			raw:              `{"category":"NOTE","data":{"content":"idea"}}`,
			wantCategory:     model.CategoryNote,
			wantFields:       map[string]any{"content": "idea"},
			wantConfirmation: MsgDefaultAck,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseClassification(tt.raw)

			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, tt.wantFields, got.Fields)
			assert.Equal(t, tt.wantConfirmation, got.Confirmation)
		})
	}
}

func TestCleanMarkdownWrapper(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanMarkdownWrapper(`{"a":1}`))
}
