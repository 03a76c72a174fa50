package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/railbook/railbook/internal/api/trainapi"
)

// Searcher is the search operation the monitor polls. Implemented by
// *activity.Activities.
type Searcher interface {
	SearchTrains(ctx context.Context, req trainapi.SearchRequest) (*trainapi.JourneyResponse, error)
}

// Notifier receives journey availability alerts. Implemented by
// *notify.Notifier.
type Notifier interface {
	SendJourneysFound(from, to string, count int) error
	SendWatchAborted(from, to, reason string) error
}

// JourneyMonitor polls the search operation until journeys appear on a route
// and notifies once per newly seen journey set. Retry policy lives here, on
// the caller side: transient failures (transport, HTTP status) keep the poll
// going, while malformed responses (decode, empty) abort the watch since
// retrying them cannot help.
type JourneyMonitor struct {
	searcher Searcher
	notifier Notifier
	logger   *logrus.Logger

	mu       sync.Mutex
	notified map[string]bool
}

func NewJourneyMonitor(searcher Searcher, notifier Notifier, logger *logrus.Logger) *JourneyMonitor {
	return &JourneyMonitor{
		searcher: searcher,
		notifier: notifier,
		logger:   logger,
		notified: make(map[string]bool),
	}
}

func (m *JourneyMonitor) ResetNotificationState() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notified = make(map[string]bool)
}

// Watch polls the route every interval until the context is cancelled or a
// permanent failure occurs. The first check runs immediately.
func (m *JourneyMonitor) Watch(ctx context.Context, req trainapi.SearchRequest, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := m.check(ctx, req); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("journey watch stopped: context cancelled")
			return nil
		case <-ticker.C:
			if err := m.check(ctx, req); err != nil {
				return err
			}
		}
	}
}

func (m *JourneyMonitor) check(ctx context.Context, req trainapi.SearchRequest) error {
	m.logger.WithFields(logrus.Fields{
		"from": req.From,
		"to":   req.To,
	}).Debug("checking journey availability")

	resp, err := m.searcher.SearchTrains(ctx, req)
	if err != nil {
		return m.handleError(req, err)
	}

	if len(resp.Journeys) == 0 {
		m.logger.WithFields(logrus.Fields{
			"from": req.From,
			"to":   req.To,
		}).Debug("no journeys available yet")
		return nil
	}

	fresh := m.markNotified(resp.Journeys)
	if fresh == 0 {
		m.logger.WithField("journeys", len(resp.Journeys)).Debug("journeys already notified")
		return nil
	}

	m.logger.WithFields(logrus.Fields{
		"from":     req.From,
		"to":       req.To,
		"journeys": len(resp.Journeys),
		"fresh":    fresh,
	}).Info("journeys found")

	return m.notifier.SendJourneysFound(req.From, req.To, len(resp.Journeys))
}

// markNotified records the journey ids seen in this check and reports how many
// of them were new.
func (m *JourneyMonitor) markNotified(journeys []trainapi.Journey) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	fresh := 0
	for _, j := range journeys {
		if !m.notified[j.ID] {
			m.notified[j.ID] = true
			fresh++
		}
	}
	return fresh
}

// handleError decides whether a search failure ends the watch. Transport and
// HTTP status failures are expected to clear on a later poll; decode and empty
// response failures mean the API contract is broken and polling again cannot
// fix it.
func (m *JourneyMonitor) handleError(req trainapi.SearchRequest, err error) error {
	var (
		transportErr *trainapi.TransportError
		statusErr    *trainapi.HTTPStatusError
	)
	if errors.As(err, &transportErr) || errors.As(err, &statusErr) {
		m.logger.WithField("error", err).Warn("journey check failed, will retry next interval")
		return nil
	}

	m.logger.WithField("error", err).Error("journey watch aborted")
	if notifyErr := m.notifier.SendWatchAborted(req.From, req.To, err.Error()); notifyErr != nil {
		m.logger.WithField("error", notifyErr).Error("failed to send watch aborted notification")
	}
	return fmt.Errorf("checking journeys: %w", err)
}
