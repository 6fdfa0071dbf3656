package tasks

import (
	"testing"

	"facestudio/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailTaskRoundTrip(t *testing.T) {
	msg := models.EmailMessage{
		To:      []string{"ana@example.com"},
		Subject: "Potvrda rezervacije - Piling",
		HTML:    "<p>Hvala</p>",
		Kind:    "reservation_confirmation",
	}

	task, opts, err := NewEmailTask(msg)
	require.NoError(t, err)
	assert.Equal(t, TypeEmailDeliver, task.Type())
	assert.Len(t, opts, 3)

	got, err := ParseEmailTask(task)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestParseEmailTaskRejectsEmptyRecipients(t *testing.T) {
	_, err := ParseEmailTask(asynq.NewTask(TypeEmailDeliver, []byte(`{"subject":"x"}`)))
	assert.Error(t, err)

	_, err = ParseEmailTask(asynq.NewTask(TypeEmailDeliver, []byte(`not json`)))
	assert.Error(t, err)
}
