package slack

import (
	"fmt"

	"github.com/sabocue/arena/internal/sabo"
	"github.com/slack-go/slack"
)

// formatGroupCompleted creates the Slack message for a finished group using Block Kit.
func (s *Notifier) formatGroupCompleted(tournamentID string, groupID sabo.GroupID, winner, runnerUp string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏁 Group %s is done! 🏁", groupID), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Winner: %s\nRunner-up: %s", winner, runnerUp)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Tournament %s", tournamentID), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// formatFinalUnlocked creates the Slack message for an unlocked final stage using Block Kit.
func (s *Notifier) formatFinalUnlocked(tournamentID string, q sabo.FinalQualifiers) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🔥 The final stage is unlocked! 🔥", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	semisText := fmt.Sprintf("Semifinal 1: %s vs %s\nSemifinal 2: %s vs %s",
		q.WinnerA, q.RunnerUpB, q.WinnerB, q.RunnerUpA)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", semisText, true, false), nil, nil))

	contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Tournament %s", tournamentID), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}

// formatTournamentCompleted creates the Slack message for a finished tournament using Block Kit.
func (s *Notifier) formatTournamentCompleted(tournamentID, champion string) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 We have a champion! 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf("Congratulations %s!", champion)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	contextText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("Tournament %s", tournamentID), true, false)
	blocks = append(blocks, slack.NewContextBlock("", contextText))

	return slack.NewBlockMessage(blocks...)
}
