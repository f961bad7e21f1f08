package operation

import "posgrad/internal/api/v1/dto"

type LoginInput struct {
	Body dto.CredentialsDTO `json:"body"`
}

type SetupInput struct {
	Body dto.CredentialsDTO `json:"body"`
}

type SessionOutput struct {
	Body dto.SessionDTO `json:"body"`
}

type DashboardInput struct{}

type DashboardOutput struct {
	Body dto.DashboardDTO `json:"body"`
}
