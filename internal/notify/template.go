package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/hardrock-co/agency-platform/internal/contacts"
)

// ContactEmailSubject is the fixed subject of the operator notification.
const ContactEmailSubject = "New Contact Form Submission - HardRock Agency"

const submittedAtLayout = "January 2, 2006 at 3:04 PM"

type contactEmailView struct {
	Name        string
	Company     string
	Email       string
	Phone       string
	PhoneHref   htmltemplate.URL
	Services    []string
	Details     string
	SubmittedAt string
}

var contactHTMLTemplate = htmltemplate.Must(htmltemplate.New("contact.html").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>New Contact Form Submission</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
<div style="background: #1a1a1a; color: #ffffff; padding: 20px; text-align: center;">
<h1 style="margin: 0;">New Contact Form Submission</h1>
</div>
<div style="background: #f9f9f9; padding: 20px;">
<p><strong>Name:</strong> {{.Name}}</p>
{{- if .Company}}
<p><strong>Company:</strong> {{.Company}}</p>
{{- end}}
<p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
<p><strong>Phone:</strong> <a href="{{.PhoneHref}}">{{.Phone}}</a></p>
{{- if .Services}}
<p><strong>Interested Services:</strong></p>
<ul>
{{- range .Services}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
{{- if .Details}}
<p><strong>Additional Details:</strong></p>
<p style="white-space: pre-line;">{{.Details}}</p>
{{- end}}
</div>
<div style="font-size: 12px; color: #777; padding: 10px 20px;">
<p>Submitted on: {{.SubmittedAt}}</p>
<p>This email was sent from your HardRock website contact form.</p>
</div>
</body>
</html>
`))

var contactTextTemplate = texttemplate.Must(texttemplate.New("contact.txt").Parse(`New Contact Form Submission

Name: {{.Name}}
{{- if .Company}}
Company: {{.Company}}
{{- end}}
Email: {{.Email}}
Phone: {{.Phone}}
{{- if .Services}}

Interested Services:
{{- range .Services}}
- {{.}}
{{- end}}
{{- end}}
{{- if .Details}}

Additional Details:
{{.Details}}
{{- end}}

Submitted on: {{.SubmittedAt}}
This email was sent from your HardRock website contact form.
`))

// RenderContactEmail builds the operator notification for a submission.
func RenderContactEmail(contact *contacts.Contact, to, toName string) (EmailMessage, error) {
	view := contactEmailView{
		Name:        contact.PersonalName,
		Email:       contact.Email,
		Phone:       contact.PhoneNumber,
		PhoneHref:   telHref(contact.PhoneNumber),
		Services:    contact.Services,
		SubmittedAt: submittedAt(contact.CreatedAt),
	}
	if contact.HasCompany() {
		view.Company = *contact.CompanyName
	}
	if contact.HasDetails() {
		view.Details = *contact.MoreDetails
	}

	var text, html bytes.Buffer
	if err := contactTextTemplate.Execute(&text, view); err != nil {
		return EmailMessage{}, fmt.Errorf("notify: render text: %w", err)
	}
	if err := contactHTMLTemplate.Execute(&html, view); err != nil {
		return EmailMessage{}, fmt.Errorf("notify: render html: %w", err)
	}
	return EmailMessage{
		To:          to,
		ToName:      toName,
		Subject:     ContactEmailSubject,
		Body:        text.String(),
		HTML:        html.String(),
		ReplyTo:     contact.Email,
		ReplyToName: contact.PersonalName,
	}, nil
}

// telHref keeps only dialable characters so the value is safe as a URL.
func telHref(phone string) htmltemplate.URL {
	var b strings.Builder
	b.WriteString("tel:")
	for _, r := range phone {
		if r == '+' || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return htmltemplate.URL(b.String())
}

func submittedAt(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(submittedAtLayout)
}

// TaskTitle is the name of the follow-up task for a submission.
func TaskTitle(contact *contacts.Contact) string {
	return "New Contact: " + contact.PersonalName
}

// TaskDescription renders the markdown body of the follow-up task.
func TaskDescription(contact *contacts.Contact) string {
	var b strings.Builder
	b.WriteString("**Contact Information:**\n\n")
	fmt.Fprintf(&b, "**Name:** %s\n", contact.PersonalName)
	if contact.HasCompany() {
		fmt.Fprintf(&b, "**Company:** %s\n", *contact.CompanyName)
	}
	fmt.Fprintf(&b, "**Email:** %s\n", contact.Email)
	fmt.Fprintf(&b, "**Phone:** %s\n\n", contact.PhoneNumber)
	if len(contact.Services) > 0 {
		fmt.Fprintf(&b, "**Interested Services:** %s\n\n", strings.Join(contact.Services, ", "))
	}
	if contact.HasDetails() {
		fmt.Fprintf(&b, "**Additional Details:**\n%s", *contact.MoreDetails)
	}
	return b.String()
}
