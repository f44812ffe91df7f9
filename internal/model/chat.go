package model

type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

// ChatMessage is one turn of a chat conversation. The server keeps no
// session state; clients resend the full history with every request.
type ChatMessage struct {
	Role ChatRole `json:"role"`
	Text string   `json:"text"`
}
