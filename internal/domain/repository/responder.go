package repository

// Responder picks the assistant's reply to a chat message
type Responder interface {
	Respond(text string) string
}
