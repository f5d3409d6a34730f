package main

import (
	"hotelier/shared/constant"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/spf13/cobra"
)

const (
	flagTopic = "topic"
	flagGroup = "group"
)

func newEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect published domain events",
	}

	tail := &cobra.Command{
		Use:   "tail",
		Short: "Print booking and invoice events until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			topics, _ := cmd.Flags().GetStringSlice(flagTopic)
			group, _ := cmd.Flags().GetString(flagGroup)

			ctl := services()
			if group == "" {
				group = ctl.Config.Kafka.ConsumerGroup + "-tail"
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var wg sync.WaitGroup

			for _, topic := range topics {
				wg.Add(1)

				go func(topic string) {
					defer wg.Done()

					ctl.Kafka.Consume(ctx, group, ctl.Kafka.Topic(topic), printEvent)
				}(topic)
			}

			wg.Wait()

			return ctl.Kafka.Close()
		},
	}

	tail.Flags().StringSlice(flagTopic, []string{
		constant.TopicBookingCreated,
		constant.TopicBookingStatusChanged,
		constant.TopicInvoiceIssued,
	}, "Topics to follow, without the configured prefix")
	tail.Flags().String(flagGroup, "", "Consumer group (defaults to the service group with a -tail suffix)")

	cmd.AddCommand(tail)

	return cmd
}

func printEvent(message kafkaGo.Message) {
	log.Info().
		Str("topic", message.Topic).
		Str("key", string(message.Key)).
		Int64("offset", message.Offset).
		RawJSON("value", message.Value).
		Msg("event")
}
