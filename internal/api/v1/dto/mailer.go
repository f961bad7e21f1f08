package dto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

type SendContactEmailDTO struct {
	SubmissionID string `json:"submissionId"`
}

// MailerResponseDTO keeps the response shape of the hosted function.
type MailerResponseDTO struct {
	Success bool   `json:"success"`
	EmailID string `json:"emailId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// PubSubPushRequest is the request body for a Pub/Sub push notification.
type PubSubPushRequest struct {
	Message      PubSubMessage `json:"message"`
	Subscription string        `json:"subscription"`
}

// PubSubMessage is the actual message from Pub/Sub.
type PubSubMessage struct {
	Data       string            `json:"data"` // Base64-encoded
	MessageID  string            `json:"messageId"`
	Attributes map[string]string `json:"attributes,omitempty" required:"false"`
}

// DecodeContact extracts the mailer payload carried in the message data.
func (m PubSubMessage) DecodeContact() (SendContactEmailDTO, error) {
	var out SendContactEmailDTO
	raw, err := base64.StdEncoding.DecodeString(m.Data)
	if err != nil {
		return out, fmt.Errorf("decoding message data: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decoding contact payload: %w", err)
	}
	return out, nil
}
