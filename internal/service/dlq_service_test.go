package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"posgrad/internal/api/v1/dto"
	"posgrad/internal/model"
	"posgrad/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeadLetterRepo struct {
	saved []model.DeadLetterMessage
	errs  []error
}

func (r *fakeDeadLetterRepo) Create(ctx context.Context, m *model.DeadLetterMessage) error {
	if len(r.errs) > 0 {
		err := r.errs[0]
		r.errs = r.errs[1:]
		if err != nil {
			return err
		}
	}
	r.saved = append(r.saved, *m)
	return nil
}

const deadSubmission = "6f1c2a8e-4b7d-4f0a-9c3e-2d5b8a1e7f90"

func TestDeadLetterRecordPush(t *testing.T) {
	repo := &fakeDeadLetterRepo{}
	svc := NewDeadLetterService(repo, zerolog.Nop())

	data := base64.StdEncoding.EncodeToString([]byte(`{"submissionId":"` + deadSubmission + `"}`))
	err := svc.RecordPush(context.Background(), &dto.PubSubPushRequest{
		Subscription: "projects/p/subscriptions/contact-submissions-dlq-sub",
		Message: dto.PubSubMessage{
			Data:       data,
			MessageID:  "m-1",
			Attributes: map[string]string{"CloudPubSubDeadLetterSourceDeliveryCount": "5"},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)

	got := repo.saved[0]
	assert.Equal(t, model.DeadLetterSourcePubSub, got.Source)
	assert.Equal(t, "m-1", got.MessageID)
	assert.Equal(t, deadSubmission, got.SubmissionID)
	assert.Equal(t, model.DeadLetterUnprocessed, got.Status)
	require.NotNil(t, got.Attributes)
	assert.JSONEq(t, `{"CloudPubSubDeadLetterSourceDeliveryCount":"5"}`, *got.Attributes)
}

func TestDeadLetterRecordPushUndecodable(t *testing.T) {
	repo := &fakeDeadLetterRepo{}
	svc := NewDeadLetterService(repo, zerolog.Nop())

	require.NoError(t, svc.RecordPush(context.Background(), &dto.PubSubPushRequest{
		Message: dto.PubSubMessage{Data: "%%not base64", MessageID: "m-2"},
	}))
	require.Len(t, repo.saved, 1)
	assert.Equal(t, "%%not base64", repo.saved[0].Payload)
	assert.Empty(t, repo.saved[0].SubmissionID)
	assert.Nil(t, repo.saved[0].Attributes)

	err := svc.RecordPush(context.Background(), &dto.PubSubPushRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeadLetterRecordQueue(t *testing.T) {
	repo := &fakeDeadLetterRepo{errs: []error{repository.ErrForeignKey}}
	svc := NewDeadLetterService(repo, zerolog.Nop())

	err := svc.RecordQueue(context.Background(), "contact_emails", 42,
		[]byte(`{"submissionId":"`+deadSubmission+`"}`), errors.New("resend: 503"))
	require.NoError(t, err)
	require.Len(t, repo.saved, 1)

	got := repo.saved[0]
	assert.Equal(t, model.DeadLetterSourceQueue, got.Source)
	assert.Equal(t, "contact_emails", got.SubscriptionName)
	assert.Equal(t, "42", got.MessageID)
	assert.Empty(t, got.SubmissionID, "dangling submission reference is dropped")
	require.NotNil(t, got.LastError)
	assert.Equal(t, "resend: 503", *got.LastError)
}

func TestDeadLetterRecordQueueRepoError(t *testing.T) {
	repo := &fakeDeadLetterRepo{errs: []error{errors.New("connection reset")}}
	svc := NewDeadLetterService(repo, zerolog.Nop())
	assert.Error(t, svc.RecordQueue(context.Background(), "q", 1, []byte(`{}`), nil))
}
