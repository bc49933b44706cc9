// Package email delivers the daily brief digest over SMTP.
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"fieldsales_backend/internal/pipeline/domain"
)

const subjectDailyBrief = "Your daily pipeline brief"

// Sender delivers the daily brief digest.
type Sender interface {
	SendDailyBrief(ctx context.Context, toEmail string, brief domain.Brief) error
}

// NoopSender is used when email is disabled. It swallows sends silently so
// the scheduler does not branch on configuration.
type NoopSender struct{}

// SendDailyBrief does nothing.
func (NoopSender) SendDailyBrief(ctx context.Context, toEmail string, brief domain.Brief) error {
	return nil
}

var briefTemplate = template.Must(template.New("daily_brief").Parse(`<html>
<body style="font-family: sans-serif; color: #1a1a1a;">
  <h2>Daily Pipeline Brief</h2>
  <p>{{.Summary}}</p>
  <p><strong>{{.HotInsight}}</strong></p>
  {{if .FollowUps}}
  <h3>Follow-ups</h3>
  <ul>
    {{range .FollowUps}}
    <li><strong>{{.Title}}</strong>: {{.Suggestion}}</li>
    {{end}}
  </ul>
  {{end}}
</body>
</html>`))

func renderDailyBrief(brief domain.Brief) (string, error) {
	var buf bytes.Buffer
	if err := briefTemplate.Execute(&buf, brief); err != nil {
		return "", fmt.Errorf("render daily brief: %w", err)
	}
	return buf.String(), nil
}
