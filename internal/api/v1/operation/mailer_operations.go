package operation

import "posgrad/internal/api/v1/dto"

type SendContactEmailInput struct {
	Body dto.SendContactEmailDTO `json:"body"`
}

// MailerOutput carries its own status so failures keep the JSON shape.
type MailerOutput struct {
	Status int
	Body   dto.MailerResponseDTO `json:"body"`
}

type PubSubContactInput struct {
	Body dto.PubSubPushRequest `json:"body"`
}
