package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
	"github.com/deskfolio/deskos/internal/infrastructure/resilience"
	"github.com/deskfolio/deskos/internal/shared/utils"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// Status lines shown by the contact app
const (
	StatusSent   = "Message sent successfully!"
	StatusFailed = "Failed to send message. Please try again."
)

var (
	// ErrInvalid wraps submission validation failures
	ErrInvalid = errors.New("invalid submission")
	// ErrNotConfigured is logged when no relay URL is set
	ErrNotConfigured = errors.New("contact relay not configured")
)

// Message is a contact form submission
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Result reports the delivery outcome
type Result struct {
	Sent   bool   `json:"sent"`
	Status string `json:"status"`
}

// Config configures the relay client
type Config struct {
	URL          string
	Timeout      time.Duration
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// DefaultConfig returns relay defaults with no endpoint
func DefaultConfig() Config {
	return Config{
		Timeout:      10 * time.Second,
		MaxRetries:   2,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
	}
}

// Relay delivers contact submissions
type Relay struct {
	url     string
	client  *resty.Client
	breaker *resilience.Breaker
	metrics *monitoring.Metrics
	log     *zap.Logger
}

// NewRelay creates a relay client
func NewRelay(cfg Config, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	d := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = d.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryWaitMin <= 0 {
		cfg.RetryWaitMin = d.RetryWaitMin
	}
	if cfg.RetryWaitMax < cfg.RetryWaitMin {
		cfg.RetryWaitMax = cfg.RetryWaitMin
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil

	client := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "deskos-contact/1.0")

	breaker := resilience.New("contact-relay", resilience.Settings{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts resilience.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to resilience.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Relay{
		url:     strings.TrimSpace(cfg.URL),
		client:  client,
		breaker: breaker,
		log:     log,
	}
}

// WithMetrics adds metrics tracking to the relay
func (r *Relay) WithMetrics(metrics *monitoring.Metrics) *Relay {
	r.metrics = metrics
	return r
}

// Configured reports whether a relay endpoint is set
func (r *Relay) Configured() bool {
	return r.url != ""
}

// Validate checks and cleans a submission
func Validate(m Message) (Message, error) {
	clean := Message{
		Name:    utils.CleanLine(m.Name),
		Email:   strings.TrimSpace(m.Email),
		Subject: utils.CleanLine(m.Subject),
		Message: strings.TrimSpace(utils.StripTags(m.Message)),
	}

	if err := utils.ValidateName(clean.Name, "name"); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := utils.ValidateEmail(clean.Email, true); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := utils.ValidateString(clean.Subject, "subject", 1, utils.MaxSubjectLength, true); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := utils.ValidateMessage(clean.Message); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return clean, nil
}

// Submit validates and delivers m. Validation failures return ErrInvalid;
// delivery failures are reported through the result only.
func (r *Relay) Submit(ctx context.Context, m Message) (Result, error) {
	clean, err := Validate(m)
	if err != nil {
		r.record("invalid")
		return Result{}, err
	}

	timer := monitoring.NewTimer(r.metrics, "contact-relay", "POST")
	err = r.deliver(ctx, clean)
	if err != nil {
		timer.Stop("error")
		r.record("failed")
		r.log.Warn("contact submission not delivered", zap.Error(err))
		return Result{Sent: false, Status: StatusFailed}, nil
	}

	timer.Stop("ok")
	r.record("sent")
	r.log.Info("contact submission delivered", zap.String("subject", clean.Subject))
	return Result{Sent: true, Status: StatusSent}, nil
}

func (r *Relay) deliver(ctx context.Context, m Message) error {
	if !r.Configured() {
		return ErrNotConfigured
	}

	resp, err := resilience.Do(r.breaker, func() (*resty.Response, error) {
		resp, err := r.client.R().
			SetContext(ctx).
			SetBody(m).
			Post(r.url)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return resp, fmt.Errorf("relay returned %s", resp.Status())
		}
		return resp, nil
	})
	if err != nil {
		return err
	}
	r.log.Debug("relay accepted submission", zap.Int("status", resp.StatusCode()))
	return nil
}

func (r *Relay) record(status string) {
	if r.metrics != nil {
		r.metrics.RecordContact(status)
	}
}
