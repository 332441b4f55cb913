package events

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	"github.com/malcolmmaima/Telepesa-sub000/internal/logger"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
)

type KafkaConfig struct {
	Brokers    []string
	Topic      string
	ClientName string
}

type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher creates a producer for the transfer events topic.
// Metrics hooks are attached so produce throughput and errors are
// observable alongside the rest of the process metrics.
func NewKafkaPublisher(conf *KafkaConfig, metrics *kprom.Metrics) (*KafkaPublisher, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),
		kgo.ClientID(conf.ClientName),
		kgo.DefaultProduceTopic(conf.Topic),
		kgo.WithHooks(metrics),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}

	return &KafkaPublisher{client: client, topic: conf.Topic}, nil
}

func (p *KafkaPublisher) PublishTransferEvent(ctx context.Context, event TransferEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		logger.Error("event publisher marshal failed", err, logger.Fields{
			"transferId": event.TransferID,
		})
		return
	}

	record := &kgo.Record{
		Key:   []byte(event.TransferID),
		Value: value,
		Topic: p.topic,
	}

	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			logger.Error("event publisher produce failed", err, logger.Fields{
				"transferId": event.TransferID,
				"status":     event.Status,
			})
		}
	})
}

func (p *KafkaPublisher) Close() {
	p.client.Close()
}
