package mailparse

import (
	"io"
	"mime"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/romado33/JobApplicationTracker/internal/models"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

// Parse converts a fetched IMAP message into a normalized Email. The body
// is reduced to a plain-text snippet of at most maxSnippet bytes;
// maxSnippet <= 0 disables truncation.
func Parse(msg *imap.Message, maxSnippet int) (*models.Email, error) {
	section := &imap.BodySectionName{}
	r := msg.GetBody(section)
	if r == nil {
		return nil, io.EOF
	}

	email, err := parseMessage(r, maxSnippet)
	if err != nil {
		return nil, err
	}

	email.UID = msg.Uid
	if email.Date.IsZero() {
		email.Date = msg.InternalDate
	}
	return email, nil
}

// parseMessage reads one RFC 822 message. Malformed headers degrade to
// empty fields; only an unreadable envelope is an error.
func parseMessage(r io.Reader, maxSnippet int) (*models.Email, error) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return nil, err
	}

	email := &models.Email{
		TraceID: uuid.New().String(),
	}

	header := mr.Header

	if fromList, err := header.AddressList("From"); err == nil && len(fromList) > 0 {
		email.Sender = fromList[0].Address
		email.SenderName = strings.TrimSpace(fromList[0].Name)
	}
	if email.Sender == "" {
		email.Sender = extractEmailAddress(header.Get("From"))
	}

	if decodedSubject, err := DecodeHeader(header.Get("Subject")); err == nil {
		email.Subject = decodedSubject
	} else {
		email.Subject = header.Get("Subject")
	}

	if date, err := header.Date(); err == nil {
		email.Date = date
	}

	// Prefer the first text/plain part; fall back to stripped text/html.
	var htmlBody string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		} else if err != nil {
			break
		}

		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, err := h.ContentType()
			if err != nil {
				continue
			}
			switch {
			case contentType == "text/plain" && email.BodyText == "":
				body, err := io.ReadAll(p.Body)
				if err != nil {
					continue
				}
				email.BodyText = string(body)
			case contentType == "text/html" && htmlBody == "":
				body, err := io.ReadAll(p.Body)
				if err != nil {
					continue
				}
				htmlBody = string(body)
			}
		}
	}

	if email.BodyText == "" && htmlBody != "" {
		email.BodyText = stripHTML(htmlBody)
	}
	email.BodyText = truncate(email.BodyText, maxSnippet)

	return email, nil
}

// Simple regex to extract the address from a From header that failed
// structured parsing
var addressPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

func extractEmailAddress(fromHeader string) string {
	return addressPattern.FindString(fromHeader)
}

// DecodeHeader decodes MIME-encoded headers (e.g., "=?UTF-8?B?...?=") to plain text
func DecodeHeader(encoded string) (string, error) {
	decoder := new(mime.WordDecoder)
	decoded, err := decoder.DecodeHeader(encoded)
	if err != nil {
		return "", err
	}
	return decoded, nil
}

var (
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

	lineBreakReplacer = strings.NewReplacer(
		"<br>", "\n", "<br/>", "\n", "<br />", "\n",
		"</p>", "\n", "</div>", "\n", "</li>", "\n",
	)

	entityReplacer = strings.NewReplacer(
		"&amp;", "&", "&lt;", "<", "&gt;", ">",
		"&quot;", `"`, "&#39;", "'", "&nbsp;", " ",
	)
)

// stripHTML gives a rough plain-text rendering of an HTML part, good enough
// for phrase matching.
func stripHTML(html string) string {
	text := lineBreakReplacer.Replace(html)
	text = htmlTagPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(entityReplacer.Replace(text))
}

// truncate caps s at max bytes without splitting a rune.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := s[:max]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
