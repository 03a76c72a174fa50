// Package activity exposes train search and booking as orchestrator-invokable
// operations. Each call performs one HTTP exchange through the train API
// client and reports success or a typed failure; retry policy belongs to the
// caller, never to this layer.
package activity

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/railbook/railbook/internal/api/trainapi"
)

// API is the train booking API surface the activities depend on. It is
// implemented by *trainapi.Client.
type API interface {
	SearchJourneys(ctx context.Context, req trainapi.SearchRequest) (*trainapi.JourneyResponse, error)
	BookTrains(ctx context.Context, req trainapi.BookRequest) (*trainapi.BookingResponse, error)
}

// Activities holds the shared dependencies for both operations. The API client
// is injected by the composition root and never mutated after construction, so
// concurrent invocations need no coordination.
type Activities struct {
	api    API
	logger *logrus.Logger
}

func New(api API, logger *logrus.Logger) *Activities {
	return &Activities{
		api:    api,
		logger: logger,
	}
}

// SearchTrains searches for journeys between two stations. Failures from the
// exchange are propagated unchanged so the caller can inspect the kind.
func (a *Activities) SearchTrains(ctx context.Context, req trainapi.SearchRequest) (*trainapi.JourneyResponse, error) {
	if req.From == "" || req.To == "" || req.OutboundTime == "" || req.ReturnTime == "" {
		return nil, fmt.Errorf("search request: from, to, outbound_time, and return_time are required")
	}

	a.logger.WithFields(logrus.Fields{
		"from":          req.From,
		"to":            req.To,
		"outbound_time": req.OutboundTime,
		"return_time":   req.ReturnTime,
	}).Info("searching trains")

	resp, err := a.api.SearchJourneys(ctx, req)
	if err != nil {
		a.logger.WithField("error", err).Error("train search failed")
		return nil, err
	}

	a.logger.WithField("journeys", len(resp.Journeys)).Info("train search complete")
	return resp, nil
}

// BookTrains books the trains named by req.TrainIDs.
func (a *Activities) BookTrains(ctx context.Context, req trainapi.BookRequest) (*trainapi.BookingResponse, error) {
	if req.TrainIDs == "" {
		return nil, fmt.Errorf("book request: train ids are required")
	}

	a.logger.WithField("train_ids", req.TrainIDs).Info("booking trains")

	resp, err := a.api.BookTrains(ctx, req)
	if err != nil {
		a.logger.WithField("error", err).Error("train booking failed")
		return nil, err
	}

	a.logger.WithFields(logrus.Fields{
		"status":    resp.Status,
		"reference": resp.Reference,
	}).Info("train booking complete")
	return resp, nil
}
