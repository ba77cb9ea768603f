package email

import (
	"fmt"
	"html"
)

// BuildMagicLinkEmail renders the kiosk login message. Property fields are
// escaped before being placed in HTML.
func BuildMagicLinkEmail(to, propertyName, propertyCode, link string) Message {
	name := propertyName
	if name == "" {
		name = propertyCode
	}
	escapedName := html.EscapeString(name)
	escapedLink := html.EscapeString(link)

	subject := fmt.Sprintf("Sign in to the %s time clock", name)

	text := fmt.Sprintf(
		"Click the link below to sign in the %s (%s) time clock device:\n\n%s\n\nThis link expires in 15 minutes. If you did not request it, you can ignore this email.",
		name, propertyCode, link,
	)

	htmlBody := fmt.Sprintf(
		`<p>Click the link below to sign in the <strong>%s</strong> (%s) time clock device:</p>`+
			`<p><a href="%s">Sign in time clock</a></p>`+
			`<p>This link expires in 15 minutes. If you did not request it, you can ignore this email.</p>`,
		escapedName, html.EscapeString(propertyCode), escapedLink,
	)

	return Message{
		To:      to,
		Subject: subject,
		HTML:    htmlBody,
		Text:    text,
	}
}
