package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/teamreg/backend/internal/model"
	"github.com/teamreg/backend/pkg/logger"
)

type GenerativeClient interface {
	Generate(ctx context.Context, message string, history []*model.ChatMessage) (string, error)
}

// ChatService relays chat messages to the generative service, answering
// from a small scripted keyword router when no client is configured or when
// a call fails. It holds no per-user session: history is caller-supplied on
// every call.
type ChatService struct {
	genai GenerativeClient
}

func NewChatService() *ChatService {
	return &ChatService{}
}

func (s *ChatService) WithGenerativeClient(c GenerativeClient) *ChatService {
	s.genai = c
	return s
}

func (s *ChatService) Reply(ctx context.Context, message string, history []*model.ChatMessage) (string, *Error) {
	l := logger.FromContext(ctx)

	if message == "" {
		return "", NewError(ErrorCodeInvalidBody, "message is required")
	}

	if s.genai == nil {
		return fallbackResponse(message), nil
	}

	reply, err := s.genai.Generate(ctx, message, history)
	if err != nil {
		l.Warn("generative service call failed, using scripted fallback", zap.Error(err))
		return fallbackResponse(message), nil
	}

	return reply, nil
}

const (
	fallbackRegister = "To register your team:\n\n1. Click 'Start Registration'\n2. Complete the reCAPTCHA verification\n3. Enter your team details\n4. Add team members\n5. Upload your ID card\n\nYou'll receive a confirmation email with your unique Team ID!"
	fallbackID       = "For ID verification, you can upload:\n\n- Government-issued ID\n- Driver's license\n- Passport\n- Student ID\n\nAccepted formats: JPEG, PNG, WebP, PDF (max 10MB)"
	fallbackHelp     = "I can help you with:\n\n- Registration process\n- ID verification\n- Team management\n- Email confirmation\n- Technical issues\n\nJust ask your question!"
	fallbackGreeting = "Hello! I'm TeamReg Assistant. How can I help you with your team registration today?"
	fallbackThanks   = "You're welcome! Is there anything else I can help you with?"
	fallbackDefault  = "I'm here to help with your team registration! You can ask me about:\n\n- How to register\n- ID verification\n- Team members\n- Email confirmation\n\nWhat would you like to know?"
)

// fallbackResponse routes the lowercased message through keyword matching.
func fallbackResponse(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "register"), strings.Contains(lower, "sign up"):
		return fallbackRegister
	case strings.Contains(lower, "id"), strings.Contains(lower, "document"), strings.Contains(lower, "upload"):
		return fallbackID
	case strings.Contains(lower, "help"):
		return fallbackHelp
	case strings.HasPrefix(lower, "hi"), strings.HasPrefix(lower, "hello"), strings.HasPrefix(lower, "hey"):
		return fallbackGreeting
	case strings.Contains(lower, "thank"):
		return fallbackThanks
	default:
		return fallbackDefault
	}
}
