package gmailclient

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

const EMAIL_INTERVAL = 3 * time.Second

// SendEmail sends a plain text email.
// Throttles requests to respect Gmail API rate limits.
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()

	if !c.lastSendTime.IsZero() {
		if wait := EMAIL_INTERVAL - time.Since(c.lastSendTime); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	raw, err := buildMessage(c.from, to, subject, body)
	if err != nil {
		return err
	}
	gmailMessage := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := c.service.Users.Messages.Send("me", gmailMessage).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	c.lastSendTime = time.Now()
	return nil
}

// buildMessage renders an RFC 2822 message. The subject is Q-encoded since
// names of the deceased are often not ASCII.
func buildMessage(from, to, subject, body string) (string, error) {
	var b strings.Builder
	if from != "" {
		addr, err := headerAddress(from)
		if err != nil {
			return "", fmt.Errorf("invalid sender: %w", err)
		}
		fmt.Fprintf(&b, "From: %s\r\n", addr)
	}
	addr, err := headerAddress(to)
	if err != nil {
		return "", fmt.Errorf("invalid recipient: %w", err)
	}
	fmt.Fprintf(&b, "To: %s\r\n", addr)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(strings.ReplaceAll(body, "\r\n", "\n"), "\n", "\r\n"))
	return b.String(), nil
}

// headerAddress parses a single address for a header line. Values with line
// breaks are rejected.
func headerAddress(value string) (string, error) {
	if strings.ContainsAny(value, "\r\n") {
		return "", fmt.Errorf("address %q contains a line break", value)
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(value))
	if err != nil {
		return "", fmt.Errorf("address %q: %w", value, err)
	}
	return addr.String(), nil
}
