package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

// HTMLEmailRenderer renders a digest as an HTML email with a plain text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

// NewHTMLEmailRenderer creates a renderer with the default email template.
func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

// Render produces an HTML email with the digest text as the plain alternative.
func (r *HTMLEmailRenderer) Render(data DigestData) (*RenderedMessage, error) {
	subject := fmt.Sprintf("%s digest %s", data.Markers, data.Generated.Format("2006-01-02"))

	view := struct {
		DigestData
		Subject string
	}{data, subject}

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, view); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject:   subject,
		Text:      data.Text,
		HTML:      htmlBuf.String(),
		Companies: len(data.Blocks),
	}, nil
}
