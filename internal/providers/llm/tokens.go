package llm

import (
	"github.com/pkoukk/tiktoken-go"
)

// CountTokens returns the BPE token count for text under the configured
// model's encoding. Falls back to a rough chars/4 estimate when the encoding
// is unavailable (unknown model, offline BPE cache).
func (o *OpenAI) CountTokens(text string) int {
	enc, err := tiktoken.EncodingForModel(o.model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
	}
	if err != nil {
		return len(text) / 4
	}
	return len(enc.Encode(text, nil, nil))
}
