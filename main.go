package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/railbook/railbook/internal/activity"
	"github.com/railbook/railbook/internal/api/trainapi"
	"github.com/railbook/railbook/internal/config"
	"github.com/railbook/railbook/internal/monitor"
	"github.com/railbook/railbook/internal/notify"
)

var CLI struct {
	Config string `help:"Path to config file" default:"config.yaml" type:"path"`

	Search SearchCmd `cmd:"" help:"Search for journeys between two stations."`
	Book   BookCmd   `cmd:"" help:"Book trains by identifier."`
	Watch  WatchCmd  `cmd:"" help:"Poll the configured route and notify when journeys appear."`
}

// app is the shared wiring handed to each command.
type app struct {
	ctx        context.Context
	cfg        *config.Config
	logger     *logrus.Logger
	activities *activity.Activities
	notifier   *notify.Notifier
}

type SearchCmd struct {
	From         string `help:"Origin station." required:""`
	To           string `help:"Destination station." required:""`
	OutboundTime string `help:"Outbound departure time." required:""`
	ReturnTime   string `help:"Return departure time." required:""`
}

func (c *SearchCmd) Run(a *app) error {
	resp, err := a.activities.SearchTrains(a.ctx, trainapi.SearchRequest{
		From:         c.From,
		To:           c.To,
		OutboundTime: c.OutboundTime,
		ReturnTime:   c.ReturnTime,
	})
	if err != nil {
		return err
	}

	if len(resp.Journeys) == 0 {
		fmt.Println("no journeys found")
		return nil
	}
	for _, j := range resp.Journeys {
		fmt.Printf("%s  %s -> %s  dep %s arr %s  %s\n",
			j.ID, j.From, j.To, j.DepartureTime, j.ArrivalTime, j.Operator)
	}
	return nil
}

type BookCmd struct {
	TrainIds string `arg:"" help:"Train identifier(s) to book, as accepted by the API."`
}

func (c *BookCmd) Run(a *app) error {
	resp, err := a.activities.BookTrains(a.ctx, trainapi.BookRequest{TrainIDs: c.TrainIds})
	if err != nil {
		return err
	}

	fmt.Printf("booking %s: %s\n", c.TrainIds, resp.Status)
	if resp.Reference != "" {
		fmt.Printf("reference: %s\n", resp.Reference)
	}

	if a.notifier != nil {
		if err := a.notifier.SendBookingConfirmed(c.TrainIds, resp.Status, resp.Reference); err != nil {
			a.logger.WithField("error", err).Error("failed to send booking notification")
		}
	}
	return nil
}

type WatchCmd struct{}

func (c *WatchCmd) Run(a *app) error {
	if a.notifier == nil {
		return fmt.Errorf("watch requires PUSHOVER_TOKEN and PUSHOVER_USER environment variables")
	}
	w := a.cfg.Watch
	if w.From == "" || w.To == "" || w.OutboundTime == "" || w.ReturnTime == "" {
		return fmt.Errorf("watch: from, to, outbound_time, and return_time must be set in config")
	}

	a.logger.WithFields(logrus.Fields{
		"route":    w.From + " -> " + w.To,
		"interval": w.Interval().String(),
	}).Info("starting journey watch")

	mon := monitor.NewJourneyMonitor(a.activities, a.notifier, a.logger)
	return mon.Watch(a.ctx, trainapi.SearchRequest{
		From:         w.From,
		To:           w.To,
		OutboundTime: w.OutboundTime,
		ReturnTime:   w.ReturnTime,
	}, w.Interval())
}

func main() {
	kctx := kong.Parse(&CLI)

	// Setup structured logging with logfmt
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	// Load configuration
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		logger.WithField("error", err).Fatal("failed to load config")
	}

	// Pushover credentials are optional; without them the commands run but
	// send no notifications, except watch which refuses to start.
	var notifier *notify.Notifier
	pushoverToken := os.Getenv("PUSHOVER_TOKEN")
	pushoverUser := os.Getenv("PUSHOVER_USER")
	if pushoverToken != "" && pushoverUser != "" {
		notifier = notify.NewNotifier(pushoverToken, pushoverUser, logger)
	} else {
		logger.Debug("PUSHOVER_TOKEN/PUSHOVER_USER not set, notifications disabled")
	}

	// One shared HTTP client for every exchange.
	httpClient := &http.Client{Timeout: cfg.API.Timeout()}
	apiClient := trainapi.NewClient(cfg.API.BaseURL, httpClient)
	activities := activity.New(apiClient, logger)

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.WithField("signal", sig).Info("received signal, shutting down")
		cancel()
	}()

	err = kctx.Run(&app{
		ctx:        ctx,
		cfg:        cfg,
		logger:     logger,
		activities: activities,
		notifier:   notifier,
	})
	if err != nil {
		logger.WithField("error", err).Fatal("command failed")
	}
}
