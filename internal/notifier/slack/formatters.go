package slack

import (
	"fmt"
	"time"

	"github.com/davronov/matchday/internal/matchdate"
	"github.com/slack-go/slack"
)

// formatReminder creates the Slack message for a scheduled match reminder
// using Block Kit.
func formatReminder(remaining matchdate.Countdown, matchDate time.Time) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⏳ Напоминание!", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	detailsText := fmt.Sprintf(
		"До матча осталось %s\n🕕 Матч состоится %s",
		remaining, matchdate.Format(matchDate),
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", detailsText, true, false), nil, nil))

	return slack.NewBlockMessage(blocks...)
}
