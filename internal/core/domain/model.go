package domain

import "io"

// Message is a single inbound chat message, scoped to one dispatch.
type Message struct {
	ID        string
	Text      string
	SenderID  string
	ChannelID string
}

// BotIdentity is the bot's own account as reported by the messaging session.
type BotIdentity struct {
	ID          string
	DisplayName string
}

// Snapshot is a camera snapshot record kept in the prefix store.
type Snapshot struct {
	Key  string `json:"-"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Parse string

const (
	ParseNone Parse = "none"
	ParseFull Parse = "full"
)

type SendOptions struct {
	AsUser bool
	Parse  Parse
}

// DefaultSendOptions are used for every outgoing text and file.
var DefaultSendOptions = SendOptions{AsUser: true, Parse: ParseFull}

// Upload describes one file attachment posted to a channel.
type Upload struct {
	Filename  string
	Title     string
	ChannelID string
	Caption   string
	Content   io.Reader
	Options   SendOptions
}
