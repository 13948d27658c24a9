package events

import (
	"context"

	"github.com/orgball2608/board-api/pkg/config"
	"github.com/orgball2608/board-api/pkg/logger"
	"go.uber.org/fx"
)

// New returns a Kafka publisher when brokers are configured and Nop otherwise.
func New(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) Publisher {
	brokers := cfg.KafkaBrokers()
	if len(brokers) == 0 {
		log.Info("KAFKA_BROKERS not set, board events disabled")
		return Nop{}
	}

	p := NewKafka(brokers, cfg.Kafka.Topic, log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return p.Close()
		},
	})

	return p
}

var Module = fx.Provide(New)
