package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultSlackAPIURL = "https://slack.com/api/chat.postMessage"

// Block is a Slack Block Kit element, represented loosely.
type Block map[string]interface{}

// RecommendationNotice is the flattened view of one recommendation as it
// appears in a Slack message.
type RecommendationNotice struct {
	FullName    string
	ProjectName string
	Score       float64
	Stars       int
	Reason      string
}

// SlackNotifier posts messages through the chat.postMessage API. A notifier
// with no token or channel is valid and silently drops every message.
type SlackNotifier struct {
	APIURL    string
	Token     string
	ChannelId string

	http *http.Client
}

func NewSlackNotifier(token string, channelId string) *SlackNotifier {
	return &SlackNotifier{
		APIURL:    defaultSlackAPIURL,
		Token:     token,
		ChannelId: channelId,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *SlackNotifier) IsConfigured() bool {
	return n.Token != "" && n.ChannelId != ""
}

type slackPayload struct {
	Channel string  `json:"channel"`
	Text    string  `json:"text"`
	Blocks  []Block `json:"blocks,omitempty"`
}

type slackResult struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error"`
}

// SendMessage posts a message with optional blocks. Returns nil without
// sending when the notifier is not configured.
func (n *SlackNotifier) SendMessage(ctx context.Context, text string, blocks []Block) error {
	if !n.IsConfigured() {
		return nil
	}

	body, err := json.Marshal(slackPayload{
		Channel: n.ChannelId,
		Text:    text,
		Blocks:  blocks,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.APIURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+n.Token)
	req.Header.Set("Content-Type", "application/json")

	res, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("slack request: %w", err)
	}
	defer res.Body.Close()

	var result slackResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return fmt.Errorf("decode slack response: %w", err)
	}
	if !result.Ok {
		return fmt.Errorf("slack rejected message: %s", result.Error)
	}
	return nil
}

// NotifyRecommendations posts a digest of high-scoring recommendations.
// No-ops on an empty list.
func (n *SlackNotifier) NotifyRecommendations(ctx context.Context, notices []RecommendationNotice, threshold float64) error {
	if len(notices) == 0 {
		return nil
	}
	fallback := fmt.Sprintf("Found %d recommendation(s) with score >= %.0f%%", len(notices), threshold*100)
	return n.SendMessage(ctx, fallback, BuildRecommendationBlocks(notices, threshold))
}

// NotifyTrendingSummary posts a short summary of one trending collection run.
func (n *SlackNotifier) NotifyTrendingSummary(ctx context.Context, totalRepos int, language string) error {
	langText := language
	if langText == "" {
		langText = "All Languages"
	}
	blocks := []Block{
		headerBlock("GitScout Trending Daily"),
		sectionBlock(fmt.Sprintf("*%d* repositories analyzed (%s)", totalRepos, langText)),
	}
	fallback := fmt.Sprintf("GitScout Trending: %d repos analyzed (%s)", totalRepos, langText)
	return n.SendMessage(ctx, fallback, blocks)
}

// BuildRecommendationBlocks renders at most five notices plus a summary line.
func BuildRecommendationBlocks(notices []RecommendationNotice, threshold float64) []Block {
	blocks := []Block{
		headerBlock("GitScout: New Recommendations"),
		sectionBlock(fmt.Sprintf("*%d recommendation(s)* above threshold (%.0f%%)", len(notices), threshold*100)),
	}

	shown := notices
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, rec := range shown {
		text := fmt.Sprintf(
			"*<https://github.com/%s|%s>* (%d stars)\nScore: *%.0f%%* | For: _%s_",
			rec.FullName, rec.FullName, rec.Stars, rec.Score*100, rec.ProjectName,
		)
		if rec.Reason != "" {
			text += fmt.Sprintf("\n>%s", rec.Reason)
		}
		blocks = append(blocks, sectionBlock(text))
	}

	if len(notices) > 5 {
		blocks = append(blocks, contextBlock(fmt.Sprintf("_...and %d more_", len(notices)-5)))
	}

	return blocks
}

func headerBlock(text string) Block {
	return Block{
		"type": "header",
		"text": map[string]interface{}{"type": "plain_text", "text": text, "emoji": true},
	}
}

func sectionBlock(text string) Block {
	return Block{
		"type": "section",
		"text": map[string]interface{}{"type": "mrkdwn", "text": text},
	}
}

func contextBlock(text string) Block {
	return Block{
		"type": "context",
		"elements": []map[string]interface{}{
			{"type": "mrkdwn", "text": text},
		},
	}
}
