package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"posgrad/internal/model"
	"posgrad/internal/notify"
	"posgrad/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ContactInput is what a visitor submits from the contact form.
type ContactInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required"`
	CourseID string `validate:"required,uuid"`
	Interest string `validate:"required,oneof=conhecer matricular"`
}

var contactMessages = map[string]string{
	"Name":     "Nome é obrigatório",
	"Email":    "Informe um e-mail válido",
	"Phone":    "Telefone é obrigatório",
	"CourseID": "Selecione um curso",
	"Interest": "Tipo de interesse inválido",
}

// ContactService records visitor inquiries and triggers their notification
type ContactService interface {
	Submit(ctx context.Context, in ContactInput) (*model.ContactSubmission, error)
}

type contactService struct {
	repo       repository.ContactRepository
	dispatcher notify.Dispatcher
	validate   *validator.Validate
	logger     zerolog.Logger
}

func NewContactService(repo repository.ContactRepository, dispatcher notify.Dispatcher, validate *validator.Validate, logger zerolog.Logger) ContactService {
	return &contactService{
		repo:       repo,
		dispatcher: dispatcher,
		validate:   validate,
		logger:     logger.With().Str("service", "ContactService").Logger(),
	}
}

// Submit stores the inquiry, then asks the mailer to send it. The store
// error is returned; a dispatch failure is only logged.
func (s *contactService) Submit(ctx context.Context, in ContactInput) (*model.ContactSubmission, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].StructField()
			return nil, &ValidationError{Field: field, Message: contactMessages[field]}
		}
		return nil, fmt.Errorf("validating contact: %w", err)
	}

	sub := &model.ContactSubmission{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		CourseID: in.CourseID,
		Interest: in.Interest,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, &ValidationError{Field: "CourseID", Message: contactMessages["CourseID"]}
		}
		s.logger.Error().Err(err).Str("email", sub.Email).Msg("Failed to store contact submission")
		return nil, err
	}

	if err := s.dispatcher.Dispatch(ctx, sub.ID); err != nil {
		s.logger.Error().Err(err).Str("submission_id", sub.ID).Msg("Failed to send email")
	}
	return sub, nil
}
