package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"olx-monitor/internal/domain"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// EmailSink delivers one email per matched subscriber, with a plain-text and
// an HTML body. Listing fields are attacker-controlled (they come straight
// from scraped markup), so everything embedded in the HTML part is escaped.
type EmailSink struct {
	cfg SMTPConfig

	// send is swappable in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailSink(cfg SMTPConfig) *EmailSink {
	return &EmailSink{cfg: cfg, send: smtp.SendMail}
}

func (s *EmailSink) Name() string { return "email" }

// Notify sends to every matched subscriber independently. One bad address
// never blocks the others; the listing counts as delivered when at least one
// send succeeded, so a fully failed listing is retried on the next run.
func (s *EmailSink) Notify(_ context.Context, l domain.Listing, matched []domain.SubscriberFilter) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	var sent int
	var errs []error
	for _, f := range matched {
		if f.Email == "" {
			log.Printf("[notify] no email address for subscriber %q, skipping", f.Name)
			continue
		}
		msg := buildMessage(s.cfg.From, f, l)
		if err := s.send(addr, auth, s.cfg.From, []string{f.Email}, msg); err != nil {
			errs = append(errs, fmt.Errorf("send to %s: %w", f.Email, err))
			continue
		}
		sent++
		log.Printf("[notify] email sent to %s for listing %s", f.Email, l.OLXID)
	}

	if sent == 0 && len(errs) > 0 {
		return errors.Join(errs...)
	}
	for _, err := range errs {
		log.Printf("[notify] partial email failure for listing %s: %v", l.OLXID, err)
	}
	return nil
}

// buildMessage renders a multipart/alternative RFC822 message.
func buildMessage(from string, f domain.SubscriberFilter, l domain.Listing) []byte {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", f.Email)
	subject := mime.QEncoding.Encode("utf-8", "New OLX listing match: "+CleanHeader(l.Title))
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/alternative; boundary=%q\r\n", mw.Boundary())
	buf.WriteString("\r\n")

	textPart, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/plain; charset="utf-8"`},
	})
	fmt.Fprint(textPart, textBody(f, l))

	htmlPart, _ := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/html; charset="utf-8"`},
	})
	fmt.Fprint(htmlPart, htmlBody(f, l))

	mw.Close()
	return buf.Bytes()
}

// CleanHeader keeps scraped text from injecting extra message headers.
func CleanHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

func textBody(f domain.SubscriberFilter, l domain.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", f.Name)
	b.WriteString("A new listing matching your criteria has been posted on OLX.pl:\n\n")
	fmt.Fprintf(&b, "Title:    %s\n", l.Title)
	fmt.Fprintf(&b, "Price:    %s\n", formatPrice(l))
	fmt.Fprintf(&b, "Location: %s\n", orAny(l.Location))
	fmt.Fprintf(&b, "URL:      %s\n\n", l.URL)
	b.WriteString("Your search criteria:\n")
	fmt.Fprintf(&b, "- Price range: %s - %s %s\n", formatBound(f.MinPrice), formatBound(f.MaxPrice), l.Currency)
	fmt.Fprintf(&b, "- Keywords: %s\n", orElse(strings.Join(f.Keywords, ", "), "Any"))
	fmt.Fprintf(&b, "- Location: %s\n\n", orElse(f.Location, "Any"))
	b.WriteString("Act fast before it's gone!\n\n---\nAutomated notification from olx-monitor\n")
	return b.String()
}

func htmlBody(f domain.SubscriberFilter, l domain.Listing) string {
	name := html.EscapeString(f.Name)
	title := html.EscapeString(l.Title)
	location := html.EscapeString(orAny(l.Location))
	adURL := html.EscapeString(l.URL)

	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "<h2>Hello %s,</h2>\n", name)
	b.WriteString("<p>A new listing matching your criteria has been posted on OLX.pl:</p>\n")
	b.WriteString(`<div style="border: 1px solid #ddd; padding: 15px; border-radius: 5px;">` + "\n")
	fmt.Fprintf(&b, "<h3>%s</h3>\n", title)
	fmt.Fprintf(&b, "<p><strong>Price:</strong> %s</p>\n", formatPrice(l))
	fmt.Fprintf(&b, "<p><strong>Location:</strong> %s</p>\n", location)
	fmt.Fprintf(&b, `<p><a href="%s">View listing</a></p>`+"\n", adURL)
	b.WriteString("</div>\n<h4>Your search criteria:</h4>\n<ul>\n")
	fmt.Fprintf(&b, "<li>Price range: %s - %s %s</li>\n", formatBound(f.MinPrice), formatBound(f.MaxPrice), l.Currency)
	fmt.Fprintf(&b, "<li>Keywords: %s</li>\n", html.EscapeString(orElse(strings.Join(f.Keywords, ", "), "Any")))
	fmt.Fprintf(&b, "<li>Location: %s</li>\n", html.EscapeString(orElse(f.Location, "Any")))
	b.WriteString("</ul>\n<p><em>Act fast before it's gone!</em></p>\n</body></html>\n")
	return b.String()
}

func orElse(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func formatBound(v *float64) string {
	if v == nil {
		return "Any"
	}
	return fmt.Sprintf("%.0f", *v)
}
