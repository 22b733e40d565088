package mqtt

import (
	"fmt"
	"strings"
)

// Topic prefixes for the voice topic tree.
//
// Utterances arrive on graylogic/voice/command/{source} and outcomes are
// published on graylogic/voice/result/{source}, where {source} identifies
// the ingress point (a satellite speaker, a wall panel, a test harness).
const (
	// TopicPrefixVoice is the base for all voice topics.
	TopicPrefixVoice = "graylogic/voice"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "graylogic/voice/system"
)

// Topics provides builders for Gray Logic Voice MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	cmdTopic := topics.Command("kitchen-satellite")
//	// Returns: "graylogic/voice/command/kitchen-satellite"
type Topics struct{}

// Command returns the topic utterances arrive on for a source.
//
// Example: graylogic/voice/command/kitchen-satellite
func (Topics) Command(source string) string {
	return fmt.Sprintf("%s/command/%s", TopicPrefixVoice, source)
}

// Result returns the topic outcomes are published to for a source.
//
// Example: graylogic/voice/result/kitchen-satellite
func (Topics) Result(source string) string {
	return fmt.Sprintf("%s/result/%s", TopicPrefixVoice, source)
}

// Refresh returns the topic that triggers a vocabulary rebuild.
//
// Example: graylogic/voice/refresh
func (Topics) Refresh() string {
	return fmt.Sprintf("%s/refresh", TopicPrefixVoice)
}

// Vocabulary returns the retained topic carrying the current vocabulary.
//
// Example: graylogic/voice/vocabulary
func (Topics) Vocabulary() string {
	return fmt.Sprintf("%s/vocabulary", TopicPrefixVoice)
}

// SystemStatus returns the system status topic, used for online/offline
// presence including the Last Will message.
//
// Example: graylogic/voice/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}

// AllCommands returns a pattern matching utterances from every source.
//
// Pattern: graylogic/voice/command/+
func (Topics) AllCommands() string {
	return fmt.Sprintf("%s/command/+", TopicPrefixVoice)
}

// CommandSource extracts the source identifier from a command topic.
//
// Returns false if the topic is not a voice command topic.
func (Topics) CommandSource(topic string) (string, bool) {
	prefix := TopicPrefixVoice + "/command/"
	source, ok := strings.CutPrefix(topic, prefix)
	if !ok || source == "" || strings.Contains(source, "/") {
		return "", false
	}
	return source, true
}
