package llm

// Canned user-facing replies. These are deliberately literal strings rather
// than a configurable message table; they are part of the bot's observable
// behavior and tests pin them.
const (
	// MsgDegradedService is the terminal fallback when every provider in the
	// cascade is unconfigured or failed.
	MsgDegradedService = "Lo siento, mis servicios de IA están saturados en este momento. Por favor, intenta de nuevo en unos minutos."

	// MsgMediaFailed is returned when the multimodal provider cannot process
	// an image or voice note. No other provider can substitute, so there is
	// no cascade.
	MsgMediaFailed = "Error: No pude procesar el archivo multimedia."

	// MsgTimeout is returned when the whole classification call exceeds its
	// deadline.
	MsgTimeout = "Tu mensaje tardó demasiado en procesarse. Por favor, intenta de nuevo."

	// MsgDefaultAck replaces a missing response field in an otherwise valid
	// provider reply.
	MsgDefaultAck = "Hecho."
)
