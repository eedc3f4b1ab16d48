package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// Mailer sends transactional email through Amazon SES. When no sender
// address is configured it becomes a no-op so local setups run without
// AWS credentials.
type Mailer struct {
	client     *sesv2.Client
	fromEmail  string
	fromName   string
	appBaseURL string
	enabled    bool
}

func NewMailer(ctx context.Context, awsRegion string, fromEmail string, fromName string, appBaseURL string) (*Mailer, error) {
	if fromEmail == "" {
		log.Println("mailer disabled: SES_FROM_EMAIL not configured")
		return &Mailer{appBaseURL: appBaseURL}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	log.Printf("mailer enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &Mailer{
		client:     sesv2.NewFromConfig(cfg),
		fromEmail:  fromEmail,
		fromName:   fromName,
		appBaseURL: appBaseURL,
		enabled:    true,
	}, nil
}

func (mailer *Mailer) IsEnabled() bool {
	return mailer.enabled
}

// SendInvitation mails the family-invitation link. The token is the only
// key the link carries.
func (mailer *Mailer) SendInvitation(ctx context.Context, toEmail string, inviterName string, profileName string, role string, token string) error {
	if !mailer.enabled {
		log.Printf("skipping email send (mailer disabled): invitation to %s", toEmail)
		return nil
	}

	link := fmt.Sprintf("%s/invite?token=%s", mailer.appBaseURL, token)
	subject := fmt.Sprintf("%s invited you to help care for %s", inviterName, profileName)
	textBody := fmt.Sprintf(`Hi,

%s invited you to join %s's care team on Nido as a %s.

Open the link below to accept the invitation:
%s

The invitation expires in 14 days. If you were not expecting this email you
can safely ignore it.
`, inviterName, profileName, role, link)
	htmlBody := fmt.Sprintf(`<p>Hi,</p>
<p>%s invited you to join <strong>%s</strong>'s care team on Nido as a %s.</p>
<p><a href="%s">Accept the invitation</a></p>
<p>The invitation expires in 14 days. If you were not expecting this email you can safely ignore it.</p>`,
		inviterName, profileName, role, link)

	return mailer.send(ctx, toEmail, subject, htmlBody, textBody)
}

// SendPasswordReset mails a reset link carrying a short-lived token.
func (mailer *Mailer) SendPasswordReset(ctx context.Context, toEmail string, displayName string, token string) error {
	if !mailer.enabled {
		log.Printf("skipping email send (mailer disabled): password reset to %s", toEmail)
		return nil
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", mailer.appBaseURL, token)
	subject := "Reset your Nido password"
	textBody := fmt.Sprintf(`Hi %s,

We received a request to reset your Nido password. Open the link below to
choose a new one:
%s

The link expires in 30 minutes. If you didn't request a reset you can
safely ignore this email.
`, displayName, link)
	htmlBody := fmt.Sprintf(`<p>Hi %s,</p>
<p>We received a request to reset your Nido password.</p>
<p><a href="%s">Choose a new password</a></p>
<p>The link expires in 30 minutes. If you didn't request a reset you can safely ignore this email.</p>`,
		displayName, link)

	return mailer.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (mailer *Mailer) send(ctx context.Context, toEmail string, subject string, htmlBody string, textBody string) error {
	fromAddress := mailer.fromEmail
	if mailer.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", mailer.fromName, mailer.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := mailer.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("send email to %s: %w", toEmail, err)
	}
	log.Printf("email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
