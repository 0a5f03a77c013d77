// cmd/worker/main.go
package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/campaignlens/campaignlens-backend/internal/config"
	"github.com/campaignlens/campaignlens-backend/internal/logger"
	"github.com/campaignlens/campaignlens-backend/internal/queue"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	log := logger.Setup(cfg.Logging.Level)

	if cfg.Queue.AMQPURL == "" {
		log.Fatal("AMQP_URL must be set for the worker")
	}

	// Connect to RabbitMQ
	conn, err := amqp.Dial(cfg.Queue.AMQPURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open a channel: %v", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.TopicCampaignUploads, // name
		true,                       // durable
		false,                      // delete when unused
		false,                      // exclusive
		false,                      // no-wait
		nil,                        // arguments
	)
	if err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatalf("failed to register consumer: %v", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var event queue.CampaignUploaded
			if err := json.Unmarshal(d.Body, &event); err != nil {
				log.Warnf("invalid upload event: %v", err)
				d.Ack(false)
				continue
			}

			log.Infof("campaign %d uploaded at %s: %d posts, media types [%s]",
				event.CampaignID,
				event.UploadedAt.Format("15:04:05"),
				event.PostCount,
				strings.Join(event.MediaTypes, ", "))
			d.Ack(false)
		}
	}()

	log.Info("worker running, waiting for campaign uploads...")
	<-forever
}
