package sendrecommendation

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"dogmatch-workers/internal/common/camunda"
	"dogmatch-workers/internal/common/config"
	"dogmatch-workers/internal/common/errors"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/common/metrics"
	"dogmatch-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const TaskType = "send-recommendation"

type Handler struct {
	config     *Config
	recipients RecipientStore
	sender     Sender
	validate   *validator.Validate
	logger     logger.Logger
	runner     *camunda.JobRunner
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Logger        logger.Logger
	Observability *observability.Observability
	Recipients    RecipientStore
	// Sender may be nil when every channel is disabled.
	Sender Sender
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Recipients == nil {
		return nil, fmt.Errorf("%s: recipient store is required", TaskType)
	}
	if opts.Sender == nil && (cfg.EmailEnabled || cfg.SMSEnabled) {
		return nil, fmt.Errorf("%s: sender is required when a channel is enabled", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:     cfg,
		recipients: opts.Recipients,
		sender:     opts.Sender,
		validate:   validator.New(),
		logger:     log,
		runner:     camunda.NewJobRunner(TaskType, cfg.Timeout, log, opts.Observability),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, func(ctx context.Context) (interface{}, error) {
		var input Input
		if err := camunda.DecodeVariables(job, GetInputSchema(), &input); err != nil {
			return nil, err
		}
		return h.Execute(ctx, &input)
	})
}

// Execute sends the email first and the SMS second. A failure before any
// channel succeeded is returned so the engine retries; an SMS failure after a
// sent email is only reported in FailedChannels.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || input.Recommendation == nil {
		return nil, errors.NewInputValidationFailedError("recommendation is required")
	}

	out := &Output{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		Channels:       []string{},
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}
	if !h.config.EmailEnabled && !h.config.SMSEnabled {
		return out, nil
	}

	recipient, err := h.recipients.Recipient(ctx, input.RecipientID)
	if err != nil {
		if stderrors.Is(err, ErrRecipientNotFound) {
			return nil, errors.NewRecipientNotFoundError(input.RecipientID)
		}
		return nil, errors.NewQueryExecutionFailedError("recipient", err)
	}

	msg, err := render(newMessage(recipient.Name, input.Recommendation))
	if err != nil {
		return nil, fmt.Errorf("render notification: %w", err)
	}

	out.MessageIDs = map[string]string{}

	if h.config.EmailEnabled && h.usable(recipient.Email, "email") {
		id, err := h.sender.SendEmail(ctx, recipient.Email, msg.Subject, msg.Text, msg.HTML)
		if err != nil {
			metrics.NotificationsSent.WithLabelValues(ChannelEmail, StatusFailed).Inc()
			return nil, errors.NewNotificationSendFailedError(ChannelEmail, err)
		}
		h.sent(out, ChannelEmail, id)
	}

	if h.config.SMSEnabled && input.Priority == PriorityHigh && h.usable(recipient.Phone, "e164") {
		id, err := h.sender.SendSMS(ctx, recipient.Phone, msg.SMS)
		if err != nil {
			metrics.NotificationsSent.WithLabelValues(ChannelSMS, StatusFailed).Inc()
			if len(out.Channels) == 0 {
				return nil, errors.NewNotificationSendFailedError(ChannelSMS, err)
			}
			h.logger.Warn("SMS send failed after email", map[string]interface{}{
				"recipientId": recipient.ID,
				"error":       err.Error(),
			})
			out.FailedChannels = append(out.FailedChannels, ChannelSMS)
		} else {
			h.sent(out, ChannelSMS, id)
		}
	}

	if len(out.Channels) > 0 {
		out.Status = StatusSent
	}

	h.logger.Info("Recommendation notification processed", map[string]interface{}{
		"notificationId": out.NotificationID,
		"recipientId":    recipient.ID,
		"status":         out.Status,
		"channels":       out.Channels,
	})
	return out, nil
}

// usable reports whether value passes the validator tag; bad contact data
// skips the channel instead of failing the job.
func (h *Handler) usable(value, tag string) bool {
	if value == "" {
		return false
	}
	if err := h.validate.Var(value, tag); err != nil {
		h.logger.Warn("Skipping channel with invalid contact", map[string]interface{}{
			"check": tag,
		})
		return false
	}
	return true
}

func (h *Handler) sent(out *Output, channel, messageID string) {
	metrics.NotificationsSent.WithLabelValues(channel, StatusSent).Inc()
	out.Channels = append(out.Channels, channel)
	out.MessageIDs[channel] = messageID
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}
