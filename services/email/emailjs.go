package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"salonbook/config"
	"salonbook/models"
	"salonbook/utils"

	"go.uber.org/zap"
)

// DefaultEndpoint is the EmailJS REST API send endpoint.
const DefaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSRelay sends templated mail through the EmailJS REST API. EmailJS has
// no Go SDK, so the relay speaks the API's JSON shape directly.
type EmailJSRelay struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string
	Endpoint   string
	HTTPClient *http.Client
}

// NewEmailJSRelay builds a relay from the loaded configuration.
func NewEmailJSRelay() *EmailJSRelay {
	return &EmailJSRelay{
		ServiceID:  config.AppConfig.EmailJSServiceID,
		TemplateID: config.AppConfig.EmailJSTemplateID,
		PublicKey:  config.AppConfig.EmailJSPublicKey,
		PrivateKey: config.AppConfig.EmailJSPrivateKey,
		Endpoint:   DefaultEndpoint,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// configured reports whether real credentials are present. Placeholder values
// from a sample env file still contain "your_".
func (r *EmailJSRelay) configured() bool {
	for _, v := range []string{r.ServiceID, r.TemplateID, r.PublicKey} {
		if v == "" || strings.Contains(v, "your_") {
			return false
		}
	}
	return true
}

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send posts the template parameters to EmailJS. With placeholder credentials
// it logs a warning and returns nil, so a fresh deployment works without a
// mail account.
func (r *EmailJSRelay) Send(ctx context.Context, templateParams map[string]string) error {
	if !r.configured() {
		utils.GetLogger().Warn("EmailJS not configured; skipping email send",
			zap.String("to", templateParams["to_email"]))
		return nil
	}

	payload := emailJSRequest{
		ServiceID:      r.ServiceID,
		TemplateID:     r.TemplateID,
		UserID:         r.PublicKey,
		AccessToken:    r.PrivateKey,
		TemplateParams: templateParams,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	endpoint := r.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := r.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("email send failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email send failed: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	utils.GetLogger().Info("Email sent", zap.String("to", templateParams["to_email"]))
	return nil
}

func (r *EmailJSRelay) SendBookingConfirmation(ctx context.Context, booking BookingEmail) error {
	return r.Send(ctx, bookingTemplateParams(booking))
}

func (r *EmailJSRelay) SendVerificationCode(ctx context.Context, email, code string) error {
	return r.Send(ctx, verificationTemplateParams(email, code))
}

func (r *EmailJSRelay) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	return r.Send(ctx, contactTemplateParams(msg))
}
