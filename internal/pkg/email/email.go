package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/senadev/guias-backend/internal/pkg/apperrors"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendCredentialsEmail(toEmail, toName, username, password string) error
}

// SMTPConfig holds configuration for the SMTP relay
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL of the application, used in the login link
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendCredentialsEmail sends the generated access credentials to a freshly
// registered instructor. The plaintext password exists only in this message;
// it is never persisted.
func (s *EmailServiceImpl) SendCredentialsEmail(toEmail, toName, username, password string) error {
	// Without SMTP credentials configured there is no relay to talk to.
	// Report the failure so registration degrades and hands the caller the
	// credentials; the plaintext exists nowhere else.
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("username", username).
			Msg("SMTP credentials not configured - credentials email not sent")
		return fmt.Errorf("%w: SMTP credentials not configured", apperrors.ErrEmailDelivery)
	}

	subject := "Datos de Acceso - Guías de Aprendizaje SENA"

	loginURL := fmt.Sprintf("%s/api/v1/auth/login", s.config.BaseURL)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Bienvenido a Guías de Aprendizaje SENA</h2>
				<p>Hola %s,</p>
				<p>Has sido registrado exitosamente en la aplicación de Guías de Aprendizaje del SENA.</p>

				<p>Tus datos de acceso son:</p>
				<ul>
					<li>Usuario: <strong>%s</strong></li>
					<li>Contraseña: <strong>%s</strong></li>
				</ul>

				<p>Por favor, inicia sesión en: <a href="%s">%s</a></p>

				<p>¡Bienvenido!<br>Equipo SENA</p>
			</div>
		</body>
		</html>
	`, toName, username, password, loginURL, loginURL)

	if err := s.sendHTMLEmail(toEmail, subject, body); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrEmailDelivery, err)
	}
	return nil
}

// sendHTMLEmail sends an HTML email through the configured relay.
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
