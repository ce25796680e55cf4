package contact

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"isoatthetop.com/web/internal/observability"
	"isoatthetop.com/web/internal/routing"
	"isoatthetop.com/web/internal/sitedata"
)

// Outcome labels of a submission, also used as metric labels.
const (
	OutcomeRelayed   = "relayed"
	OutcomeFailed    = "failed"
	OutcomeMailto    = "mailto"
	OutcomeRejected  = "rejected"
	OutcomeThrottled = "throttled"
)

// Sender delivers a submission to a form endpoint.
type Sender interface {
	Send(ctx context.Context, endpoint string, sub Submission) (string, error)
}

// Request is one form post.
type Request struct {
	Locale   routing.Locale
	Contact  sitedata.ContactConfig
	ClientIP string
	Values   map[string][]string
}

// Result tells the handler what to render.
type Result struct {
	Outcome string
	Banner  Banner
	// MailtoURL is set when no endpoint is configured.
	MailtoURL string
}

// Service turns form posts into relayed requests or mailto fallbacks.
type Service struct {
	sender  Sender
	limiter *Limiter
	logger  *zap.Logger
}

// NewService wires the form handling. limiter may be nil.
func NewService(sender Sender, limiter *Limiter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sender: sender, limiter: limiter, logger: logger}
}

// Submit processes req. The returned error is one of the package sentinels
// and Result always holds a banner suitable for display.
func (s *Service) Submit(ctx context.Context, req Request) (Result, error) {
	res, err := s.submit(ctx, req)
	observability.ObserveContact(res.Outcome)
	return res, err
}

func (s *Service) submit(ctx context.Context, req Request) (Result, error) {
	endpoint := strings.TrimSpace(req.Contact.FormEndpoint)
	if endpoint == "" {
		return s.mailto(req)
	}

	if !s.limiter.Allow(req.ClientIP) {
		s.logger.Warn("contact submission throttled", zap.String("ip", req.ClientIP))
		return Result{Outcome: OutcomeThrottled, Banner: Banner{Kind: BannerError}}, ErrRateLimited
	}
	sub, err := FromValues(req.Values)
	if err != nil {
		s.logger.Info("contact submission rejected", zap.Error(err))
		return Result{Outcome: OutcomeRejected, Banner: Banner{Kind: BannerError}}, err
	}

	id, err := s.sender.Send(ctx, endpoint, sub)
	if err != nil {
		s.logger.Error("contact relay failed", zap.String("submission_id", id), zap.Error(err))
		if !errors.Is(err, ErrRelayFailed) {
			err = errors.Join(ErrRelayFailed, err)
		}
		return Result{Outcome: OutcomeFailed, Banner: Banner{Kind: BannerError, ID: id}}, err
	}
	s.logger.Info("contact submission relayed", zap.String("submission_id", id))
	return Result{Outcome: OutcomeRelayed, Banner: Banner{Kind: BannerSuccess, ID: id}}, nil
}

// mailto hands the form over to the visitor's mail client. Nothing leaves
// the server, so the limiter does not apply and an empty form still opens a
// blank message. A filled honeypot is still rejected.
func (s *Service) mailto(req Request) (Result, error) {
	sub, err := FromValues(req.Values)
	switch {
	case errors.Is(err, ErrEmpty):
		sub = Submission{}
	case err != nil:
		s.logger.Info("contact submission rejected", zap.Error(err))
		return Result{Outcome: OutcomeRejected, Banner: Banner{Kind: BannerError}}, err
	}
	email := req.Contact.Email
	if strings.TrimSpace(email) == "" {
		email = sitedata.DefaultEmail
	}
	return Result{Outcome: OutcomeMailto, MailtoURL: MailtoURL(email, req.Locale, sub)}, nil
}
