package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"knagent-be/pkg/events"
	pktNats "knagent-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var eventsDurable string

var eventsCmd = &cobra.Command{
	Use:   "events [type]",
	Short: "Tail domain events from NATS (all types unless one is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEvents,
}

func init() {
	eventsCmd.Flags().StringVar(&eventsDurable, "durable", "knagentctl-tail", "durable consumer name")
}

func runEvents(cmd *cobra.Command, args []string) error {
	if cfg.App.NatsURL == "" {
		return errors.New("NATS_URL is not set")
	}
	eventType := ">"
	if len(args) == 1 {
		eventType = args[0]
	}

	sub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		return err
	}
	defer sub.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	err = sub.Subscribe(ctx, eventType, eventsDurable, func(_ context.Context, e events.Event) error {
		data, err := json.Marshal(e.Payload())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s %s\n", e.Timestamp().Format("15:04:05"), color.CyanString(e.EventType()), data)
		return nil
	})
	if err != nil {
		return err
	}

	color.Green("Listening for %s events, Ctrl+C to stop", eventType)
	<-ctx.Done()
	return nil
}
