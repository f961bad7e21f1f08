package handler

import (
	"context"
	"errors"

	"posgrad/internal/api/v1/dto"
	"posgrad/internal/api/v1/operation"
	"posgrad/internal/auth"
	"posgrad/internal/service"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog"
)

// Authenticator signs admins in against the hosted auth provider.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*auth.Session, error)
	SignUp(ctx context.Context, email, password string) (*auth.Session, error)
}

// SetupPolicy controls the first-admin bootstrap. Setup is refused unless
// enabled, and only listed admin emails may register.
type SetupPolicy struct {
	Enabled bool
	Admins  auth.AdminPolicy
}

type AdminHandler struct {
	auth      Authenticator
	dashboard service.DashboardService
	setup     SetupPolicy
	logger    zerolog.Logger
}

func NewAdminHandler(authenticator Authenticator, dashboard service.DashboardService, setup SetupPolicy, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{auth: authenticator, dashboard: dashboard, setup: setup, logger: logger}
}

func (h *AdminHandler) Login(ctx context.Context, input *operation.LoginInput) (*operation.SessionOutput, error) {
	s, err := h.auth.SignIn(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, h.authError(err, "Failed to sign in")
	}
	return &operation.SessionOutput{Body: sessionDTO(s)}, nil
}

// Setup registers the first admin account
func (h *AdminHandler) Setup(ctx context.Context, input *operation.SetupInput) (*operation.SessionOutput, error) {
	if !h.setup.Enabled {
		h.logger.Warn().Str("email", input.Body.Email).Msg("Rejected admin setup while disabled")
		return nil, huma.Error403Forbidden("Cadastro de administrador desativado")
	}
	if !h.setup.Admins.AllowsEmail(input.Body.Email) {
		h.logger.Warn().Str("email", input.Body.Email).Msg("Rejected admin setup for unlisted email")
		return nil, huma.Error403Forbidden("E-mail não autorizado como administrador")
	}
	s, err := h.auth.SignUp(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, h.authError(err, "Failed to create admin account")
	}
	h.logger.Info().Str("email", s.User.Email).Msg("Admin account created")
	return &operation.SessionOutput{Body: sessionDTO(s)}, nil
}

func (h *AdminHandler) Dashboard(ctx context.Context, _ *operation.DashboardInput) (*operation.DashboardOutput, error) {
	st, err := h.dashboard.Stats(ctx)
	if err != nil {
		return nil, toAPIError(err, "Failed to load dashboard", h.logger)
	}
	return &operation.DashboardOutput{Body: dto.DashboardDTO{
		TotalCourses:   st.TotalCourses,
		ActiveCourses:  st.ActiveCourses,
		Submissions:    st.Submissions,
		Enrollments:    st.Enrollments,
		ConversionRate: st.ConversionRate,
	}}, nil
}

func (h *AdminHandler) authError(err error, msg string) error {
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return huma.Error401Unauthorized("Email ou senha inválidos")
	}
	var pe *auth.ProviderError
	if errors.As(err, &pe) && pe.Status < 500 {
		return huma.NewError(pe.Status, pe.Message)
	}
	h.logger.Error().Err(err).Msg(msg)
	return huma.Error502BadGateway(msg)
}

func sessionDTO(s *auth.Session) dto.SessionDTO {
	return dto.SessionDTO{
		AccessToken:          s.AccessToken,
		RefreshToken:         s.RefreshToken,
		ExpiresIn:            s.ExpiresIn,
		UserID:               s.User.ID,
		Email:                s.User.Email,
		ConfirmationRequired: s.AccessToken == "",
	}
}
