package llm

const groqBaseURL = "https://api.groq.com/openai/v1"

// NewGroqClient creates the secondary text-only provider.
func NewGroqClient(apiKey, model string) Client {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return newChatClient("groq", groqBaseURL, apiKey, model)
}
