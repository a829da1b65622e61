package mailer

import (
	"bytes"
	"html/template"
	"time"
)

// ContactNotificationData describes a contact form submission.
type ContactNotificationData struct {
	SiteName  string
	Name      string
	Email     string
	Message   string
	Lang      string
	InboxURL  string
	CreatedAt time.Time
}

var contactHTML = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html><body style="font-family: sans-serif; line-height: 1.5;">
<h2 style="margin-bottom: 0.5em;">{{.SiteName}}</h2>
<p>رسالة جديدة من نموذج التواصل / New message from the contact form</p>
<table cellpadding="4">
<tr><td><strong>الاسم / Name</strong></td><td>{{.Name}}</td></tr>
<tr><td><strong>البريد / Email</strong></td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
<tr><td><strong>اللغة / Language</strong></td><td>{{.Lang}}</td></tr>
<tr><td><strong>التاريخ / Date</strong></td><td>{{.CreatedAt.Format "2006-01-02 15:04 MST"}}</td></tr>
</table>
<div dir="auto" style="white-space: pre-wrap; border-left: 3px solid #2e7d32; padding-left: 12px;">{{.Message}}</div>
{{if .InboxURL}}<p><a href="{{.InboxURL}}">فتح صندوق الرسائل / Open inbox</a></p>{{end}}
</body></html>`))

// ContactNotificationEmail builds the subject and bodies of the admin notification.
func ContactNotificationEmail(data ContactNotificationData) (subject, textBody, htmlBody string) {
	subject = "رسالة جديدة / New message: " + data.Name

	var text bytes.Buffer
	text.WriteString("New message from the contact form on " + data.SiteName + "\n\n")
	text.WriteString("Name: " + data.Name + "\n")
	text.WriteString("Email: " + data.Email + "\n")
	text.WriteString("Language: " + data.Lang + "\n")
	text.WriteString("Date: " + data.CreatedAt.Format("2006-01-02 15:04 MST") + "\n\n")
	text.WriteString(data.Message + "\n")
	if data.InboxURL != "" {
		text.WriteString("\nInbox: " + data.InboxURL + "\n")
	}

	var buf bytes.Buffer
	if err := contactHTML.Execute(&buf, data); err != nil {
		return subject, text.String(), ""
	}
	return subject, text.String(), buf.String()
}
