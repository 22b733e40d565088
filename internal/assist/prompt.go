package assist

import (
	"fmt"
	"strings"

	"github.com/nerrad567/gray-logic-voice/internal/vocabulary"
)

// promptTemplate frames the utterance for the engine. The grammar constrains
// what the model can emit, so the prompt only needs to establish the task
// and the response marker the extractor looks for.
const promptTemplate = `You convert smart home voice commands into JSON.
Respond with a single JSON object with fields "device", "action" and
optionally "location" and "value".

Known devices: %s
Known actions: %s
Known locations: %s

User: %s
Assistant:`

// buildPrompt renders the completion prompt for an utterance against the
// current vocabulary.
func buildPrompt(text string, m *vocabulary.Mapping) string {
	devices := make([]string, len(m.Vocabulary.Devices))
	for i, d := range m.Vocabulary.Devices {
		devices[i] = string(d)
	}

	return fmt.Sprintf(promptTemplate,
		strings.Join(devices, ", "),
		strings.Join(m.Vocabulary.Actions, ", "),
		strings.Join(m.Vocabulary.Locations, ", "),
		text,
	)
}
