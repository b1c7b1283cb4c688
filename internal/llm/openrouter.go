package llm

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterClient creates the primary text-only provider.
func NewOpenRouterClient(apiKey, model string) Client {
	if model == "" {
		model = "meta-llama/llama-3.1-8b-instruct:free"
	}
	return newChatClient("openrouter", openRouterBaseURL, apiKey, model)
}
