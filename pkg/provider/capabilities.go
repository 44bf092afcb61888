package provider

// Support says whether a provider can honour a capability.
type Support int

const (
	// Supported providers honour the capability.
	Supported Support = iota
	// Unverifiable providers proxy many vendors; support depends on the
	// model behind them and cannot be known statically.
	Unverifiable
	// Unsupported providers reject or ignore the capability.
	Unsupported
)

func (s Support) String() string {
	switch s {
	case Supported:
		return "supported"
	case Unverifiable:
		return "unverifiable"
	case Unsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

var structuredOutput = map[ID]Support{
	OpenAI:           Supported,
	Anthropic:        Supported,
	Google:           Supported,
	Mistral:          Supported,
	XAI:              Supported,
	OpenRouter:       Unverifiable,
	OpenAICompatible: Unverifiable,
	Ollama:           Unverifiable,
	DeepSeek:         Unsupported,
	Cohere:           Unsupported,
	Perplexity:       Unsupported,
}

// StructuredOutputSupport reports whether id can constrain responses to a
// JSON schema. Providers missing from the table are unverifiable.
func StructuredOutputSupport(id ID) Support {
	if s, ok := structuredOutput[id]; ok {
		return s
	}
	return Unverifiable
}

// RequiresContiguousSystemMessages reports whether id folds every system
// message into one system prompt, so system messages must not be separated
// by other messages.
func RequiresContiguousSystemMessages(id ID) bool {
	return id == Google || id == Anthropic
}

// RequiresUserAfterSystem reports whether id needs the message after the
// system prompt to come from the user.
func RequiresUserAfterSystem(id ID) bool {
	return id == Google
}
