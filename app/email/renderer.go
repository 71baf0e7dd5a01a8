// Package email renders and delivers the digest email.
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"dailydigest/app/digest"
)

// Message is a rendered digest email.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// Renderer produces the HTML digest email with a plain text alternative.
type Renderer struct {
	tmpl   *template.Template
	appURL string
}

func NewRenderer(appURL string) *Renderer {
	funcs := template.FuncMap{
		"dict": func(pairs ...any) map[string]any {
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i+1 < len(pairs); i += 2 {
				m[pairs[i].(string)] = pairs[i+1]
			}
			return m
		},
	}
	t := template.Must(template.New("digest").Funcs(funcs).Parse(digestHTMLTemplate))
	return &Renderer{tmpl: t, appURL: appURL}
}

// Render builds the subject, HTML body and plain text alternative for a digest.
func (r *Renderer) Render(d *digest.Digest) (*Message, error) {
	data := map[string]any{
		"Digest": d,
		"AppURL": r.appURL,
	}

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &Message{
		Subject: fmt.Sprintf("Daily Digest - %s", d.Date),
		HTML:    htmlBuf.String(),
		Text:    renderPlainText(d, r.appURL),
	}, nil
}

func renderPlainText(d *digest.Digest, appURL string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Daily Digest - %s\n", d.Date)
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	if len(d.TopStories) > 0 {
		sb.WriteString("TOP STORIES\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n\n")
		for _, a := range d.TopStories {
			fmt.Fprintf(&sb, "%s (%s, %d/10)\n%s\n%s\n\n", a.Title, a.SourceName, a.Score, a.Summary, a.URL)
		}
	}

	if len(d.AlsoInteresting) > 0 {
		sb.WriteString("ALSO INTERESTING\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n\n")
		for _, a := range d.AlsoInteresting {
			fmt.Fprintf(&sb, "%s (%s, %d/10)\n%s\n\n", a.Title, a.SourceName, a.Score, a.URL)
		}
	}

	fmt.Fprintf(&sb, "View and vote: %s/digest/%s\n", appURL, d.Date)

	return sb.String()
}
