package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scrim-scheduler/internal/metrics"
	"github.com/mauv0809/scrim-scheduler/internal/notifier"
	"github.com/mauv0809/scrim-scheduler/internal/roster"
	"github.com/mauv0809/scrim-scheduler/internal/schedule"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// maxBestHours caps the ranked hours rendered in one message.
const maxBestHours = 10

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
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
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendTeamAvailability(team roster.Team, grid *schedule.AvailabilityMap, best []notifier.BestHour, zone string, dryRun bool) error {
	msg := s.formatTeamAvailability(team, best, zone, coverage(grid))
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatTeamAvailabilityResponse formats a team summary for a slash command response.
func (s *Notifier) FormatTeamAvailabilityResponse(team roster.Team, best []notifier.BestHour, zone string) (any, error) {
	return s.formatTeamAvailability(team, best, zone, -1), nil
}

// FormatTeamNotFoundResponse formats a team not found message for a slash command response.
func (s *Notifier) FormatTeamNotFoundResponse(query string) (any, error) {
	return s.formatTeamNotFound(query), nil
}

// formatTeamAvailability builds the Block Kit summary. coverage < 0 omits the coverage line.
func (s *Notifier) formatTeamAvailability(team roster.Team, best []notifier.BestHour, zone string, coverage int) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("📅 Availability for %s", team.Name), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	intro := fmt.Sprintf("Times are shown in *%s*. %d players on the roster.", zone, len(team.Members))
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", intro, false, false), nil, nil))

	if len(best) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", "No overlapping availability this week.", false, false), nil, nil))
	} else {
		if len(best) > maxBestHours {
			best = best[:maxBestHours]
		}
		var lines []string
		for i, b := range best {
			lines = append(lines, fmt.Sprintf("%d. *%s %s* (%s) · %d/%d: %s",
				i+1, b.Day, b.Hour.Label24, b.Hour.Label12, len(b.Players), len(team.Members), strings.Join(b.Players, ", ")))
		}
		bestText := "*Best hours:*\n" + strings.Join(lines, "\n")
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", bestText, false, false), nil, nil))
	}

	if coverage >= 0 {
		contextText := fmt.Sprintf("%d of %d hours have at least one player available", coverage, schedule.HoursInDay*schedule.DaysInWeek)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, false, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatTeamNotFound creates a Slack message for when a team cannot be found.
func (s *Notifier) formatTeamNotFound(query string) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a team matching *%s*. Try a different name.", query)
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}

// coverage counts the cells with at least one available player.
func coverage(grid *schedule.AvailabilityMap) int {
	if grid == nil {
		return 0
	}
	n := 0
	grid.Each(func(_ schedule.HourOfDay, _ schedule.DayOfWeek, s schedule.HourStatus) {
		if len(s.AvailablePlayers) > 0 {
			n++
		}
	})
	return n
}
