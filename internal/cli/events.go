package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"support-assistant-be/internal/config"
	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/pkg/events"
	pktNats "support-assistant-be/pkg/nats"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newEventsCommand() *cobra.Command {
	var (
		natsURL string
		durable string
	)

	cmd := &cobra.Command{
		Use:   "events [type]",
		Short: "Tail resolution events from NATS",
		Long:  "Prints events published by the server. The type defaults to chat.resolved; use \">\" for every event.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if natsURL == "" {
				natsURL = cfg.App.NatsURL
			}
			if natsURL == "" {
				return fmt.Errorf("no NATS URL: set NATS_URL or pass --nats-url")
			}

			eventType := events.EventTypeChatResolved
			if len(args) == 1 {
				eventType = args[0]
			}

			sub, err := pktNats.NewSubscriber(natsURL, logger.NewNopLogger())
			if err != nil {
				return err
			}
			defer sub.Close()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			out := cmd.OutOrStdout()
			if err := sub.Subscribe(ctx, eventType, durable, func(ctx context.Context, event events.Event) error {
				printEvent(out, event)
				return nil
			}); err != nil {
				return err
			}

			color.New(color.FgCyan).Fprintf(out, "Listening for %s on %s. Press Ctrl+C to stop.\n", eventType, natsURL)
			<-ctx.Done()
			return nil
		},
	}
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server URL (defaults to NATS_URL)")
	cmd.Flags().StringVar(&durable, "durable", "", "durable consumer name; empty tails new events only")
	return cmd
}

func printEvent(out io.Writer, event events.Event) {
	payload := event.Payload()
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	color.New(color.FgYellow).Fprintf(out, "%s ", event.Timestamp().Format("15:04:05.000"))
	color.New(color.FgMagenta).Fprintf(out, "%s", event.EventType())
	for _, k := range keys {
		fmt.Fprintf(out, " %s=%v", k, payload[k])
	}
	fmt.Fprintln(out)
}
