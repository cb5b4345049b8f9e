package notify

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/noamsh/lead-relay/internal/leads"
)

// htmlBody renders the operator notification. dir="rtl" keeps the Hebrew
// labels readable while the field values stay untouched.
var htmlBody = template.Must(template.New("lead").Parse(`<!DOCTYPE html>
<html dir="rtl" lang="he">
<body style="font-family: Arial, sans-serif; direction: rtl;">
  <h2>ליד חדש מדף הנחיתה / New Lead</h2>
  <table border="0" cellpadding="6" style="border-collapse: collapse;">
    <tr><td><b>שם / Name:</b></td><td>{{.Name}}</td></tr>
    <tr><td><b>אימייל / Email:</b></td><td>{{.Email}}</td></tr>
    <tr><td><b>טלפון / Phone:</b></td><td>{{.Phone}}</td></tr>
    <tr><td><b>הסכמה לוואטסאפ / WhatsApp consent:</b></td><td>{{.Consent}}</td></tr>
    <tr><td><b>מקור / Source:</b></td><td>{{.Source}}</td></tr>
    <tr><td><b>התקבל בתאריך / Received:</b></td><td>{{.Received}}</td></tr>
  </table>
</body>
</html>
`))

type messageData struct {
	Name     string
	Email    string
	Phone    string
	Consent  string
	Source   string
	Received string
}

func renderSubject(sub *leads.Submission) string {
	return fmt.Sprintf("ליד חדש מדף הנחיתה: %s", sub.Name)
}

// renderText builds the plain-text part. Field values appear verbatim.
func renderText(sub *leads.Submission, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("New lead received / התקבל ליד חדש\n\n")
	fmt.Fprintf(&b, "Name: %s\n", sub.Name)
	fmt.Fprintf(&b, "Email: %s\n", sub.Email)
	fmt.Fprintf(&b, "Phone: %s\n", sub.Phone)
	fmt.Fprintf(&b, "WhatsApp consent: %s\n", sub.ConsentToken())
	fmt.Fprintf(&b, "Source: %s\n", sub.Source)
	fmt.Fprintf(&b, "Received: %s\n", formatTimestamp(sub.Timestamp, loc))
	return b.String()
}

func renderHTML(sub *leads.Submission, loc *time.Location) (string, error) {
	var b strings.Builder
	err := htmlBody.Execute(&b, messageData{
		Name:     sub.Name,
		Email:    sub.Email,
		Phone:    sub.Phone,
		Consent:  sub.ConsentToken(),
		Source:   sub.Source,
		Received: formatTimestamp(sub.Timestamp, loc),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// formatTimestamp localizes the ISO timestamp into the operator's
// timezone with a day-first layout. Unparseable input passes through
// unchanged rather than losing the value.
func formatTimestamp(raw string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("02/01/2006, 15:04:05")
}
