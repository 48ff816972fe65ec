// Package email renders and delivers the submission notification mail that
// relays a form submission to the form owner.
package email

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/skatsaros/go-forms-backend/internal/domain"
	"github.com/skatsaros/go-forms-backend/internal/i18n"
)

var bodyTmpl = template.Must(template.New("submission").Parse(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;color:#1a1a1a;max-width:640px;margin:0 auto;padding:24px">
  <h2 style="margin-bottom:4px">{{.FormTitle}}</h2>
  <p style="color:#666;margin-top:0">{{.Labels.SubmittedAt}}: {{.SubmittedAt}}</p>
  <h3>{{.Labels.Details}}</h3>
  <table style="border-collapse:collapse;width:100%">
    <tr>
      <th style="text-align:left;border-bottom:2px solid #ddd;padding:8px">{{.Labels.Field}}</th>
      <th style="text-align:left;border-bottom:2px solid #ddd;padding:8px">{{.Labels.Value}}</th>
    </tr>
    {{- range .Rows}}
    <tr>
      <td style="border-bottom:1px solid #eee;padding:8px;vertical-align:top">{{.Label}}</td>
      <td style="border-bottom:1px solid #eee;padding:8px">{{.Value}}</td>
    </tr>
    {{- end}}
  </table>
  {{- if .AttachmentNote}}
  <p style="background:#f5f5f5;padding:12px;border-radius:4px">{{.AttachmentNote}}</p>
  {{- end}}
  <p style="color:#999;font-size:12px;margin-top:32px">{{.Labels.Footer}}</p>
</body>
</html>`))

type bodyRow struct {
	Label string
	Value string
}

type bodyData struct {
	FormTitle      string
	SubmittedAt    string
	Rows           []bodyRow
	AttachmentNote string
	Labels         struct {
		SubmittedAt string
		Details     string
		Field       string
		Value       string
		Footer      string
	}
}

// Compose renders the notification subject and HTML body for one submission.
// Field order follows the form definition, not the payload, so owners read
// answers in the order they designed. lang selects the dictionary used for
// the static labels.
func Compose(form *domain.Form, data map[string]any, files []string, lang string) (subject, html string, err error) {
	t := i18n.T(lang)

	subject = form.EmailSubject
	if strings.TrimSpace(subject) == "" {
		subject = fmt.Sprintf("%s: %s", t("email.newSubmission"), form.Title)
	}

	b := bodyData{
		FormTitle:   form.Title,
		SubmittedAt: time.Now().UTC().Format("2006-01-02 15:04:05 MST"),
	}
	b.Labels.SubmittedAt = t("email.submittedAt")
	b.Labels.Details = t("email.submissionDetails")
	b.Labels.Field = t("email.field")
	b.Labels.Value = t("email.value")
	b.Labels.Footer = t("email.footer")

	for _, f := range form.Fields {
		b.Rows = append(b.Rows, bodyRow{Label: f.Label, Value: renderValue(f, data, t)})
	}

	if n := len(files); n > 0 {
		noun := t("email.attachments")
		if n == 1 {
			noun = t("email.attachment")
		}
		b.AttachmentNote = fmt.Sprintf("%s (%d %s). %s", t("email.attachmentsIncluded"), n, noun, t("email.attachmentsNote"))
	}

	var sb strings.Builder
	if err := bodyTmpl.Execute(&sb, b); err != nil {
		return "", "", fmt.Errorf("email: render body: %w", err)
	}
	return subject, sb.String(), nil
}

// renderValue formats one answered field for the table. Checkbox answers
// become yes/no, multi-value answers join with commas, and file fields show
// an attachment count instead of raw storage paths.
func renderValue(f domain.FormField, data map[string]any, t i18n.TranslateFunc) string {
	v, ok := data[f.ID]
	if !ok || v == nil {
		return t("email.notProvided")
	}

	switch f.Type {
	case domain.FieldCheckbox:
		if b, ok := v.(bool); ok {
			if b {
				return t("common.yes")
			}
			return t("common.no")
		}
	case domain.FieldFile:
		n := valueCount(v)
		if n == 0 {
			return t("email.noFiles")
		}
		noun := t("email.attachments")
		if n == 1 {
			noun = t("email.attachment")
		}
		return fmt.Sprintf("%d %s", n, noun)
	}

	switch vv := v.(type) {
	case string:
		if strings.TrimSpace(vv) == "" {
			return t("email.notProvided")
		}
		return vv
	case []any:
		parts := make([]string, 0, len(vv))
		for _, item := range vv {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	case []string:
		return strings.Join(vv, ", ")
	default:
		return fmt.Sprint(vv)
	}
}

func valueCount(v any) int {
	switch vv := v.(type) {
	case []any:
		return len(vv)
	case []string:
		return len(vv)
	case string:
		if strings.TrimSpace(vv) == "" {
			return 0
		}
		return 1
	default:
		return 0
	}
}
