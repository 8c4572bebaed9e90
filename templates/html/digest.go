package templates

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// DigestItem is one unread announcement in the weekly email
type DigestItem struct {
	Name        string
	Description string
	Author      string
	CreatedAt   time.Time
}

// DigestSubject is the subject line for n unread announcements
func DigestSubject(n int) string {
	if n == 1 {
		return "You have 1 unread announcement"
	}
	return fmt.Sprintf("You have %d unread announcements", n)
}

// RenderUnreadDigest lists a user's unread announcements with a link back to
// the inbox at baseURL
func RenderUnreadDigest(firstname string, items []DigestItem, baseURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s,</p>\n", html.EscapeString(firstname))
	b.WriteString("<p>These announcements are still waiting in your inbox:</p>\n")
	for _, it := range items {
		b.WriteString(`<div class="item">`)
		fmt.Fprintf(&b, "<h3>%s</h3>", html.EscapeString(it.Name))
		if it.Author != "" {
			fmt.Fprintf(&b, "<small>%s, %s</small>", html.EscapeString(it.Author), it.CreatedAt.Format("Jan 2, 2006"))
		}
		fmt.Fprintf(&b, "<p>%s</p>", textToHTML(excerpt(it.Description, 280)))
		b.WriteString("</div>\n")
	}
	if baseURL != "" {
		fmt.Fprintf(&b, `<p><a class="button" href="%s">Open inbox</a></p>`,
			html.EscapeString(strings.TrimRight(baseURL, "/")+"/announcements/inbox"))
	}
	return layout(DigestSubject(len(items)), b.String())
}

// RenderUnreadDigestText is the plain text alternative of RenderUnreadDigest
func RenderUnreadDigestText(firstname string, items []DigestItem, baseURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThese announcements are still waiting in your inbox:\n\n", firstname)
	for _, it := range items {
		fmt.Fprintf(&b, "- %s\n", it.Name)
	}
	if baseURL != "" {
		fmt.Fprintf(&b, "\nOpen inbox: %s/announcements/inbox\n", strings.TrimRight(baseURL, "/"))
	}
	return b.String()
}

func textToHTML(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// excerpt cuts s to at most n runes, adding an ellipsis when it was cut
func excerpt(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
