package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/sabocue/arena/internal/metrics"
	"github.com/sabocue/arena/internal/sabo"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	counters := metrics.NewMockStore()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", counters)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	counters := metrics.NewMockStore()
	notifier := NewNotifierWithAPI(api, "C123", counters)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	all, err := counters.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 1, all["slack_notifications_sent"])
	assert.Equal(t, 0, all["slack_notifications_failed"])
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	counters := metrics.NewMockStore()
	notifier := NewNotifierWithAPI(api, "C123", counters)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	all, err := counters.GetAll()
	require.NoError(t, err)
	assert.Equal(t, 0, all["slack_notifications_sent"])
	assert.Equal(t, 1, all["slack_notifications_failed"])
}

// Test one of the public methods to ensure it calls the private sender.
func TestSendFinalUnlocked_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	counters := metrics.NewMockStore()
	notifier := NewNotifierWithAPI(api, "C123", counters)

	q := sabo.FinalQualifiers{WinnerA: "a-01", RunnerUpA: "a-02", WinnerB: "b-01", RunnerUpB: "b-02"}
	err := notifier.SendFinalUnlocked("t1", q, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
}
