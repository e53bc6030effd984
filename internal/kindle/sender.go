package kindle

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/smtp"
	"os"
	"path/filepath"
	"time"

	"github.com/cmartel/learning-journal/internal/config"
	"github.com/cmartel/learning-journal/internal/digest"
)

// ErrNotConfigured is returned when the Kindle address, sender address
// or SMTP password is missing. The journal stays available on disk.
var ErrNotConfigured = errors.New("kindle: delivery not configured")

// Sender emails the generated journal to a Kindle address over
// authenticated SMTP with STARTTLS.
type Sender struct {
	cfg config.KindleConfig
	now func() time.Time
}

func NewSender(cfg config.KindleConfig) *Sender {
	return &Sender{
		cfg: cfg,
		now: time.Now,
	}
}

// Send mails the PDF at pdfPath as an attachment. All failures are
// classified and logged with a hint; the returned error is informational
// and never fatal to the pipeline.
func (s *Sender) Send(pdfPath string) error {
	if s.cfg.Email == "" || s.cfg.SenderEmail == "" {
		log.Println("Kindle email or sender email not configured")
		log.Println("To configure:")
		log.Println("  1. Go to https://www.amazon.com/myk")
		log.Println("  2. Add your sender email to the approved list")
		log.Println("  3. Note your @kindle.com address")
		return ErrNotConfigured
	}
	if s.cfg.SMTPPassword == "" {
		log.Println("SMTP password not configured")
		log.Println("For Gmail, use an app password:")
		log.Println("  1. Enable 2FA on your Google account")
		log.Println("  2. Generate an app password")
		log.Println("  3. Use that password in the configuration")
		return ErrNotConfigured
	}

	pdfData, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("kindle: failed to read attachment: %w", err)
	}

	msg := s.buildMessage(filepath.Base(pdfPath), pdfData)

	log.Println("Connecting to SMTP server...")
	if err := s.submit(msg); err != nil {
		return err
	}

	log.Printf("Sent successfully to Kindle: %s", s.cfg.Email)
	return nil
}

// buildMessage composes the MIME multipart message: a plain-text body
// plus the base64-encoded PDF attachment.
func (s *Sender) buildMessage(filename string, pdfData []byte) []byte {
	const boundary = "journal-boundary-7MA4YWxkTrZu0gW"
	now := s.now()

	body := fmt.Sprintf(`Votre journal d'apprentissage quotidien est en pièce jointe !

Ce PDF contient :
- Les derniers articles de vos flux RSS
- Des résumés IA des vidéos récentes
- Des QR codes pour accéder aux sources originales

Date : %s
Taille du fichier : %.1f KB

Bonne lecture !

---
Généré automatiquement par votre Système d'Apprentissage
`, digest.LongDateFR(now), float64(len(pdfData))/1024)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", s.cfg.SenderEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", s.cfg.Email)
	fmt.Fprintf(&buf, "Subject: Journal d'Apprentissage - %s\r\n", digest.ShortDate(now))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", boundary)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	buf.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: application/octet-stream\r\n")
	buf.WriteString("Content-Transfer-Encoding: base64\r\n")
	fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n", filename)
	buf.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString(pdfData)
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes()
}

// submit runs the SMTP conversation step by step so authentication
// failures and recipient refusals stay distinguishable.
func (s *Sender) submit(msg []byte) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPServer, s.cfg.SMTPPort)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("kindle: failed to connect to %s: %w", addr, err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: s.cfg.SMTPServer}); err != nil {
		return fmt.Errorf("kindle: STARTTLS failed: %w", err)
	}

	auth := smtp.PlainAuth("", s.cfg.SenderEmail, s.cfg.SMTPPassword, s.cfg.SMTPServer)
	if err := client.Auth(auth); err != nil {
		log.Println("SMTP authentication failed")
		log.Println("Check your credentials; for Gmail use an app password")
		return fmt.Errorf("kindle: SMTP authentication failed: %w", err)
	}

	if err := client.Mail(s.cfg.SenderEmail); err != nil {
		return fmt.Errorf("kindle: MAIL FROM rejected: %w", err)
	}
	if err := client.Rcpt(s.cfg.Email); err != nil {
		log.Println("Kindle email address refused")
		log.Println("Check that your sender email is approved on Amazon")
		return fmt.Errorf("kindle: recipient refused: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("kindle: DATA failed: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("kindle: failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("kindle: failed to finish message: %w", err)
	}

	return client.Quit()
}
