package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	params []*bot.SendMessageParams
	err    error
}

func (s *fakeSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	s.params = append(s.params, params)
	if s.err != nil {
		return nil, s.err
	}
	return &models.Message{ID: len(s.params)}, nil
}

func TestNotify_SendsToChat(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegramNotifier(sender, zap.NewNop())

	err := n.Notify(context.Background(), "123456", "Exam Proctoring Assignment Confirmation", "Date: 2024-03-04")
	require.NoError(t, err)

	require.Len(t, sender.params, 1)
	assert.Equal(t, int64(123456), sender.params[0].ChatID)
	assert.Equal(t, "📌 Exam Proctoring Assignment Confirmation\n\nDate: 2024-03-04", sender.params[0].Text)
}

func TestNotify_InvalidChannel(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegramNotifier(sender, zap.NewNop())

	for _, channel := range []string{"", "  ", "ada@example.com", "0"} {
		err := n.Notify(context.Background(), channel, "s", "b")
		assert.ErrorIs(t, err, ErrInvalidChannel, channel)
	}
	assert.Empty(t, sender.params)
}

func TestNotify_WrapsSendError(t *testing.T) {
	boom := errors.New("bot was blocked by the user")
	n := NewTelegramNotifier(&fakeSender{err: boom}, zap.NewNop())

	err := n.Notify(context.Background(), "-100200", "s", "b")
	assert.ErrorIs(t, err, boom)
}

func TestParseChatID_GroupChat(t *testing.T) {
	id, err := ParseChatID(" -1001234 ")
	require.NoError(t, err)
	assert.Equal(t, int64(-1001234), id)
}

func TestFormatMessage_NoSubject(t *testing.T) {
	assert.Equal(t, "body", FormatMessage("", "body"))
}
