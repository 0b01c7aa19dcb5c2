package kafka

import (
	"github.com/Shopify/sarama"
	"github.com/flexprice/invoicing/internal/config"
)

func applySaramaConfig(saramaConfig *sarama.Config, cfg *config.Configuration) *sarama.Config {
	saramaConfig.Version = sarama.V2_1_0_0
	saramaConfig.ClientID = cfg.Kafka.ClientID

	// A consumer without committed offsets starts from the earliest message
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Offsets.Retry.Max = 3

	return saramaConfig
}
