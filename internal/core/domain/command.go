package domain

import "strings"

// Command is the intent derived from one inbound message.
type Command string

const (
	None          Command = "none"
	SnapshotList  Command = "snapshot_list"
	SnapshotFetch Command = "snapshot_fetch"
	Greeting      Command = "greeting"
)

const (
	magicBot = "bot"
	magicGet = "get"
)

// CheckMessage reports why a message must not be classified, or nil if it may be.
func CheckMessage(identity BotIdentity, message Message) error {
	if message.Text == "" {
		return ErrEmptyMessage
	}

	if message.SenderID == identity.ID {
		return ErrSelfMessage
	}

	return nil
}

// Classify maps a message to exactly one Command. Rules are evaluated in order and the first
// match wins. It has no side effects.
func Classify(identity BotIdentity, message Message) Command {
	if CheckMessage(identity, message) != nil {
		return None
	}

	if !mentionsBot(identity, message.Text) && !ContainsFold(message.Text, magicGet) {
		return None
	}

	switch {
	case ContainsFold(message.Text, "snapshot list"), ContainsFold(message.Text, "camera list"):
		return SnapshotList
	case ContainsFold(message.Text, "snapshot"):
		return SnapshotFetch
	case mentionsBot(identity, message.Text):
		// narrower than the gate above, "get" alone never greets
		return Greeting
	default:
		return None
	}
}

func mentionsBot(identity BotIdentity, text string) bool {
	if identity.ID != "" && strings.Contains(text, identity.ID) {
		return true
	}

	return ContainsFold(text, identity.DisplayName) || ContainsFold(text, magicBot)
}

// ContainsFold is a case-insensitive substring test. An empty needle never matches.
func ContainsFold(text, needle string) bool {
	if needle == "" {
		return false
	}

	return strings.Contains(strings.ToLower(text), strings.ToLower(needle))
}
