package domain

// Message is one line of a session transcript (user or bot).
type Message struct {
	ID        MessageID
	SessionID SessionID
	Author    Role
	Text      string
	CreatedAt Timestamp

	// Filled for user messages: what the sentiment provider said.
	Category Category
	Score    float64

	// Filled for bot messages: which rule produced the reply.
	Branch Branch
	Intent string
}

// Session groups the messages a user exchanged with the bot. The bot itself
// never reads earlier turns when deciding a reply.
type Session struct {
	ID        SessionID
	UserID    UserID
	Title     string
	CreatedAt Timestamp
	UpdatedAt Timestamp
}
