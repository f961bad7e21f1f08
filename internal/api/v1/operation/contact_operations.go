package operation

import "posgrad/internal/api/v1/dto"

type SubmitContactInput struct {
	Body dto.ContactCreateDTO `json:"body"`
}

type SubmitContactOutput struct {
	Body dto.ContactResponseDTO `json:"body"`
}
