package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aaronipollock/memory-palace-sub001/internal/apperr"
	"github.com/aaronipollock/memory-palace-sub001/pkg/email"
)

// FeedbackService forwards user feedback to the configured inbox. When no
// sender is configured (dev mode) the message is logged and dropped.
type FeedbackService struct {
	sender email.Sender
	to     string
}

func NewFeedbackService(sender email.Sender, to string) *FeedbackService {
	return &FeedbackService{sender: sender, to: to}
}

type FeedbackRequest struct {
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,min=1,max=5000"`
}

func (s *FeedbackService) Send(ctx context.Context, fromEmail string, req FeedbackRequest) error {
	subject := req.Subject
	if subject == "" {
		subject = "Memory palace feedback"
	}

	body := fmt.Sprintf("From: %s\n\n%s", fromEmail, req.Message)

	if s.sender == nil || s.to == "" {
		log.Printf("[FEEDBACK] email disabled, dropping feedback from %s: %s", fromEmail, subject)
		return nil
	}

	if err := s.sender.Send(ctx, s.to, subject, body); err != nil {
		return apperr.Internal(err)
	}

	return nil
}
