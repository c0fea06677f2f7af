package email

import (
	"context"
	"fmt"
	"time"

	"salonbook/models"
)

// EmailService delivers the salon's transactional mail: booking
// confirmations, registration verification codes and contact-form messages.
// Implemented directly by the EmailJS relay and by the queue dispatcher.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, booking BookingEmail) error
	SendVerificationCode(ctx context.Context, email, code string) error
	SendContactMessage(ctx context.Context, msg models.ContactMessage) error
}

// BookingEmail carries everything the confirmation template renders.
type BookingEmail struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceName   string
	Date          time.Time
	Price         float64
	Duration      int
}

// Template parameter builders. The recipient address is repeated under the
// aliases different EmailJS template setups expect, so one template config
// works no matter which field name the dashboard binds.

func bookingTemplateParams(b BookingEmail) map[string]string {
	phone := b.CustomerPhone
	if phone == "" {
		phone = "No proporcionado"
	}
	return map[string]string{
		"to_email":         b.CustomerEmail,
		"email":            b.CustomerEmail,
		"contact_email":    b.CustomerEmail,
		"reply_to":         b.CustomerEmail,
		"user_name":        b.CustomerName,
		"user_email":       b.CustomerEmail,
		"user_phone":       phone,
		"service_name":     b.ServiceName,
		"appointment_date": b.Date.Format("02/01/2006"),
		"appointment_time": b.Date.Format("15:04"),
		"service_price":    fmt.Sprintf("%g€", b.Price),
		"service_duration": fmt.Sprintf("%d min", b.Duration),
		"message":          "Reserva realizada desde la web",
	}
}

func verificationTemplateParams(toEmail, code string) map[string]string {
	return map[string]string{
		"to_email":          toEmail,
		"email":             toEmail,
		"verification_code": code,
		"user_name":         "Cliente",
		"message":           fmt.Sprintf("Tu código de verificación para Nuria Olias es: %s. Expira en 5 minutos.", code),
	}
}

func contactTemplateParams(msg models.ContactMessage) map[string]string {
	phone := msg.Phone
	if phone == "" {
		phone = "No proporcionado"
	}
	return map[string]string{
		"to_email":   msg.Email,
		"email":      msg.Email,
		"reply_to":   msg.Email,
		"user_name":  msg.Name,
		"user_email": msg.Email,
		"user_phone": phone,
		"message":    msg.Message,
	}
}
