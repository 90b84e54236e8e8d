package utils

import (
	"fmt"
	"log"
	"skillforge/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a transactional email through Sendgrid. When no API key
// is configured the call is a logged no-op, so local and test runs never
// reach the network.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.SendgridKey == "" {
		log.Printf("Email disabled, skipping '%s' to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("SkillForge", cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendgridKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if response.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s: %d %s", toEmail, response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	return nil
}

// getEmailTemplate wraps body content in the platform email layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #101828; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #101828; line-height: 1.6; }
			.footer { padding: 20px 30px; color: #98A2B3; font-size: 12px; text-align: center; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">You are receiving this email because you have a SkillForge account.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendAchievementEmail notifies a user of a newly unlocked achievement
func SendAchievementEmail(name, email, achievementTitle string, xpReward int) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You just unlocked the achievement <b>%s</b> and earned <b>%d XP</b>.</p>
		<p>Keep your streak going to unlock the next one!</p>`, name, achievementTitle, xpReward)
	return SendEmail(name, email, "Achievement unlocked: "+achievementTitle, getEmailTemplate("Achievement Unlocked", body))
}

// SendCertificateEmail notifies a user that their certificate was issued
func SendCertificateEmail(name, email, moduleTitle, certificateNo string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your certificate for completing <b>%s</b> has been issued.</p>
		<p>Certificate number: <b>%s</b></p>`, name, moduleTitle, certificateNo)
	return SendEmail(name, email, "Your certificate for "+moduleTitle, getEmailTemplate("Certificate Issued", body))
}

// SendStreakReminderEmail nudges a user whose streak expires today
func SendStreakReminderEmail(name, email string, currentStreak int) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your <b>%d-day</b> learning streak ends tonight. Complete any lesson today to keep it alive.</p>`, name, currentStreak)
	return SendEmail(name, email, "Don't lose your streak!", getEmailTemplate("Streak Reminder", body))
}
