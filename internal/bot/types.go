package bot

// Request is one inbound chat command, already stripped of transport
// detail by the HTTP layer.
type Request struct {
	// Command is the first token of the command text, lower-cased.
	Command string
	// Args is the raw text following the command token.
	Args string
	// UserID identifies the caller within the chat platform.
	UserID string
	// ConversationID identifies where the command was issued.
	ConversationID string
	// Multiuser marks a conversation with more participants than the
	// caller (a group channel rather than a direct message).
	Multiuser bool
}

// Response is the synchronous reply to a Request.
type Response struct {
	Text string
	// InChannel makes the reply visible to the whole conversation instead
	// of only the caller.
	InChannel bool
	// OfferSplit attaches the inline "split the teams now" confirm action
	// with the given button label.
	OfferSplit bool
	SplitLabel string
}

// Scheduler is the part of the reminder scheduler the router drives.
type Scheduler interface {
	Arm(times []string) error
	Disarm()
}
