package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sabocue/arena/internal/metrics"
	"github.com/sabocue/arena/internal/notifier"
	"github.com/sabocue/arena/internal/sabo"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	counters  metrics.MetricsStore
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, counters metrics.MetricsStore) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		counters:  counters,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, counters metrics.MetricsStore) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		counters:  counters,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.counters.Increment("slack_notifications_failed")
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.counters.Increment("slack_notifications_sent")
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendGroupCompleted(tournamentID string, groupID sabo.GroupID, winner, runnerUp string, dryRun bool) error {
	msg := s.formatGroupCompleted(tournamentID, groupID, winner, runnerUp)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendFinalUnlocked(tournamentID string, qualifiers sabo.FinalQualifiers, dryRun bool) error {
	msg := s.formatFinalUnlocked(tournamentID, qualifiers)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendTournamentCompleted(tournamentID, champion string, dryRun bool) error {
	msg := s.formatTournamentCompleted(tournamentID, champion)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}
