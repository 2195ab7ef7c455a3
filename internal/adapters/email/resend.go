package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// resendBatchSize is the provider's per-call ceiling for batch sends.
const resendBatchSize = 100

// ResendSender delivers client email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender builds a sender with the given API key and default
// from address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// params maps a SendRequest onto the provider request shape, filling in
// the configured from address when the request names none.
func (s *ResendSender) params(req SendRequest) *resend.SendEmailRequest {
	from := req.From
	if from == "" {
		from = s.from
	}
	p := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}
	if req.ReplyTo != "" {
		p.ReplyTo = req.ReplyTo
	}
	return p
}

// Send queues a single email for delivery.
// PRE: req has at least one recipient and a subject
// POST: returns the provider message ID on acceptance
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, s.params(req))
	if err != nil {
		slog.Error("resend_send_failed", "error", err, "to", req.To, "subject", req.Subject)
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	slog.Info("resend_sent", "message_id", sent.Id, "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: sent.Id,
		SentAt:    time.Now(),
	}, nil
}

// SendBatch queues several emails through the batch endpoint, splitting
// into provider-sized chunks.
// POST: results come back in request order; a mid-batch failure returns
// the results accepted so far alongside the error
func (s *ResendSender) SendBatch(ctx context.Context, reqs []SendRequest) ([]SendResult, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	var results []SendResult
	for start := 0; start < len(reqs); start += resendBatchSize {
		end := start + resendBatchSize
		if end > len(reqs) {
			end = len(reqs)
		}

		chunk := make([]*resend.SendEmailRequest, 0, end-start)
		for _, req := range reqs[start:end] {
			chunk = append(chunk, s.params(req))
		}

		resp, err := s.client.Batch.SendWithContext(ctx, chunk)
		if err != nil {
			slog.Error("resend_batch_failed", "error", err, "batch_size", len(chunk))
			return results, fmt.Errorf("resend batch send failed: %w", err)
		}
		for _, item := range resp.Data {
			results = append(results, SendResult{
				MessageID: item.Id,
				SentAt:    time.Now(),
			})
		}
		slog.Info("resend_batch_sent", "count", len(chunk), "total_sent", len(results))
	}

	return results, nil
}
