package mapchat

import "time"

// Sender identifies which side of the conversation produced a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// MessageStatus tracks whether a bot message is still being generated.
// The transient typing placeholder is the only message that is ever pending.
type MessageStatus string

const (
	StatusPending MessageStatus = "pending"
	StatusDone    MessageStatus = "done"
)

// Message is one entry in a session's append-only log. ID is unique within
// a session and is the join key used to attach command results after
// execution completes.
type Message struct {
	ID                string
	Sender            Sender
	Text              string
	Status            MessageStatus
	Timestamp         time.Time
	MapCommands       []Command
	MapCommandResults []CommandResult
}

// Mode distinguishes how the user produced the text of a send request.
type Mode string

const (
	ModeText  Mode = "text"
	ModeVoice Mode = "voice"
)

// PendingMessage is a send request deferred because no session was ready.
// At most one exists at a time; a later send during session creation
// replaces it (last-write-wins).
type PendingMessage struct {
	Text string
	Mode Mode
}
