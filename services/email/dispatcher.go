package email

import (
	"context"
	"encoding/json"
	"fmt"

	"salonbook/config"
	"salonbook/models"
	"salonbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskTypeSend is the asynq task type handled by the email worker.
const TaskTypeSend = "email:send"

// TaskPayload is the queued representation of an outgoing email.
type TaskPayload struct {
	TemplateParams map[string]string `json:"template_params"`
}

// Dispatcher is the queued EmailService. Sends enqueue a task on the email
// queue; the background worker drains it through the EmailJS relay, so request
// handlers never block on the mail provider.
type Dispatcher struct {
	Client *asynq.Client
}

// NewDispatcher builds a dispatcher backed by the configured email queue.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		Client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisEmailQueueDB,
		}),
	}
}

func (d *Dispatcher) enqueue(ctx context.Context, templateParams map[string]string) error {
	payload, err := json.Marshal(TaskPayload{TemplateParams: templateParams})
	if err != nil {
		return fmt.Errorf("failed to encode email task: %w", err)
	}

	info, err := d.Client.EnqueueContext(ctx, asynq.NewTask(TaskTypeSend, payload), asynq.MaxRetry(3))
	if err != nil {
		return fmt.Errorf("failed to enqueue email task: %w", err)
	}

	utils.GetLogger().Info("Email queued",
		zap.String("taskID", info.ID),
		zap.String("to", templateParams["to_email"]))
	return nil
}

func (d *Dispatcher) SendBookingConfirmation(ctx context.Context, booking BookingEmail) error {
	return d.enqueue(ctx, bookingTemplateParams(booking))
}

func (d *Dispatcher) SendVerificationCode(ctx context.Context, email, code string) error {
	return d.enqueue(ctx, verificationTemplateParams(email, code))
}

func (d *Dispatcher) SendContactMessage(ctx context.Context, msg models.ContactMessage) error {
	return d.enqueue(ctx, contactTemplateParams(msg))
}
