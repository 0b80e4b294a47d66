package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"coffee-reservation/internal/data/entity"
	"coffee-reservation/pkg/utils"

	"go.uber.org/zap"
)

// EmailNotifier posts confirmation emails to an external mail worker.
// Delivery is best effort: failures are logged, never propagated into
// the booking path.
type EmailNotifier struct {
	workerURL string
	from      string
	timeout   time.Duration
	client    *http.Client
	log       *zap.Logger
}

func NewEmailNotifier(config utils.EmailConfig, log *zap.Logger) *EmailNotifier {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	return &EmailNotifier{
		workerURL: config.WorkerURL,
		from:      config.From,
		timeout:   timeout,
		client:    &http.Client{Timeout: timeout},
		log:       log.With(zap.String("notifier", "email")),
	}
}

type emailPayload struct {
	To      string `json:"to"`
	From    string `json:"from,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NotifyReservationCreated sends the booking confirmation email.
// Safe to call from a goroutine; it uses its own timeout context.
func (n *EmailNotifier) NotifyReservationCreated(reservation *entity.Reservation) {
	if n.workerURL == "" {
		n.log.Debug("Email worker URL not configured, skipping notification",
			zap.Int64("reservation_id", reservation.ID))
		return
	}
	if reservation.Email == nil || *reservation.Email == "" {
		n.log.Debug("Reservation has no email, skipping notification",
			zap.Int64("reservation_id", reservation.ID))
		return
	}

	subject := fmt.Sprintf("Reservation Confirmed: RES-%d", reservation.ID)
	payload := emailPayload{
		To:      *reservation.Email,
		From:    n.from,
		Subject: subject,
		Body:    buildConfirmationBody(reservation),
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.post(ctx, payload); err != nil {
		n.log.Warn("Failed to send confirmation email",
			zap.Error(err),
			zap.Int64("reservation_id", reservation.ID),
		)
		return
	}

	n.log.Info("Confirmation email sent",
		zap.Int64("reservation_id", reservation.ID),
		zap.String("to", *reservation.Email),
	)
}

func (n *EmailNotifier) post(ctx context.Context, payload emailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.workerURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post to email worker: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("email worker responded with status %d", resp.StatusCode)
	}

	return nil
}

func buildConfirmationBody(r *entity.Reservation) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<h1>Reservation Confirmation</h1>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", r.Name)
	fmt.Fprintf(&b, "<p>Your reservation has been received!</p>")
	fmt.Fprintf(&b, "<p><strong>Reservation ID:</strong> RES-%d</p>", r.ID)
	fmt.Fprintf(&b, "<p><strong>Date:</strong> %s</p>", r.Date)
	fmt.Fprintf(&b, "<p><strong>Time:</strong> %s</p>", r.Time)
	fmt.Fprintf(&b, "<p><strong>Party Size:</strong> %d</p>", r.PartySize)
	fmt.Fprintf(&b, "<p><strong>Coffee Selection:</strong> %s</p>", r.CoffeeName)
	fmt.Fprintf(&b, "<p><strong>Total Amount:</strong> %d</p>", r.TotalAmount)
	if r.Notes != nil && *r.Notes != "" {
		fmt.Fprintf(&b, "<p><strong>Special Notes:</strong> %s</p>", *r.Notes)
	}
	fmt.Fprintf(&b, "<p>We look forward to seeing you!</p>")
	return b.String()
}
