// cmd/server/main.go
package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/campaignlens/campaignlens-backend/internal/config"
	"github.com/campaignlens/campaignlens-backend/internal/handler"
	"github.com/campaignlens/campaignlens-backend/internal/logger"
	"github.com/campaignlens/campaignlens-backend/internal/queue"
	"github.com/campaignlens/campaignlens-backend/internal/repository"
	"github.com/campaignlens/campaignlens-backend/internal/service"
)

func main() {
	// .env is optional, OS environment still applies
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	log := logger.Setup(cfg.Logging.Level)

	campaignRepo := repository.NewCampaignRepository()

	var q queue.Queue
	if cfg.Queue.AMQPURL != "" {
		amqpQueue, err := queue.DialAMQP(cfg.Queue.AMQPURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
		log.Info("publishing upload events to RabbitMQ")
	} else {
		inMem := queue.NewInMemoryQueue(log)
		queue.StartUploadLogSubscriber(inMem, log)
		q = inMem
	}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		Queue:        q,
		Logger:       log,
	}

	campaignHandler := &handler.CampaignHandler{
		Service:        campaignService,
		Logger:         log,
		MaxUploadBytes: cfg.Upload.MaxSizeBytes(),
		TempDir:        cfg.Upload.TempDir,
	}

	r := handler.NewRouter(campaignHandler, handler.NewHealthHandler(), cfg.Server.CORSAllowedOrigin, log)

	log.Infof("server running on :%s", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, r))
}
