package activity

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/railbook/railbook/internal/api/trainapi"
)

type fakeAPI struct {
	searchFunc func(ctx context.Context, req trainapi.SearchRequest) (*trainapi.JourneyResponse, error)
	bookFunc   func(ctx context.Context, req trainapi.BookRequest) (*trainapi.BookingResponse, error)
	calls      int
}

func (f *fakeAPI) SearchJourneys(ctx context.Context, req trainapi.SearchRequest) (*trainapi.JourneyResponse, error) {
	f.calls++
	return f.searchFunc(ctx, req)
}

func (f *fakeAPI) BookTrains(ctx context.Context, req trainapi.BookRequest) (*trainapi.BookingResponse, error) {
	f.calls++
	return f.bookFunc(ctx, req)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func validSearch() trainapi.SearchRequest {
	return trainapi.SearchRequest{
		From:         "London Euston",
		To:           "Manchester",
		OutboundTime: "2024-01-01T09:00",
		ReturnTime:   "2024-01-01T18:00",
	}
}

func TestSearchTrains(t *testing.T) {
	want := &trainapi.JourneyResponse{Journeys: []trainapi.Journey{{ID: "J1"}}}
	api := &fakeAPI{
		searchFunc: func(ctx context.Context, req trainapi.SearchRequest) (*trainapi.JourneyResponse, error) {
			assert.Equal(t, validSearch(), req)
			return want, nil
		},
	}

	a := New(api, testLogger())
	resp, err := a.SearchTrains(context.Background(), validSearch())

	require.NoError(t, err)
	assert.Equal(t, want, resp)
}

func TestSearchTrainsPropagatesFailureUnchanged(t *testing.T) {
	apiErr := &trainapi.HTTPStatusError{Code: 503}
	api := &fakeAPI{
		searchFunc: func(ctx context.Context, req trainapi.SearchRequest) (*trainapi.JourneyResponse, error) {
			return nil, apiErr
		},
	}

	a := New(api, testLogger())
	_, err := a.SearchTrains(context.Background(), validSearch())

	// The taxonomy reaches the caller untouched.
	assert.Same(t, apiErr, err.(*trainapi.HTTPStatusError))
}

func TestSearchTrainsRejectsMissingFields(t *testing.T) {
	api := &fakeAPI{}
	a := New(api, testLogger())

	for _, req := range []trainapi.SearchRequest{
		{To: "Manchester", OutboundTime: "09:00", ReturnTime: "18:00"},
		{From: "London Euston", OutboundTime: "09:00", ReturnTime: "18:00"},
		{From: "London Euston", To: "Manchester", ReturnTime: "18:00"},
		{From: "London Euston", To: "Manchester", OutboundTime: "09:00"},
	} {
		_, err := a.SearchTrains(context.Background(), req)
		assert.Error(t, err)
	}
	assert.Zero(t, api.calls, "invalid requests must not reach the wire")
}

func TestBookTrains(t *testing.T) {
	want := &trainapi.BookingResponse{Status: "confirmed", Reference: "BK-42"}
	api := &fakeAPI{
		bookFunc: func(ctx context.Context, req trainapi.BookRequest) (*trainapi.BookingResponse, error) {
			assert.Equal(t, "T1,T2", req.TrainIDs)
			return want, nil
		},
	}

	a := New(api, testLogger())
	resp, err := a.BookTrains(context.Background(), trainapi.BookRequest{TrainIDs: "T1,T2"})

	require.NoError(t, err)
	assert.Equal(t, want, resp)
}

func TestBookTrainsPropagatesFailureUnchanged(t *testing.T) {
	apiErr := &trainapi.EmptyResponseError{Operation: "book"}
	api := &fakeAPI{
		bookFunc: func(ctx context.Context, req trainapi.BookRequest) (*trainapi.BookingResponse, error) {
			return nil, apiErr
		},
	}

	a := New(api, testLogger())
	_, err := a.BookTrains(context.Background(), trainapi.BookRequest{TrainIDs: "T1"})

	assert.Same(t, apiErr, err.(*trainapi.EmptyResponseError))
}

func TestBookTrainsRejectsMissingIDs(t *testing.T) {
	api := &fakeAPI{}
	a := New(api, testLogger())

	_, err := a.BookTrains(context.Background(), trainapi.BookRequest{})
	assert.Error(t, err)
	assert.Zero(t, api.calls)
}
