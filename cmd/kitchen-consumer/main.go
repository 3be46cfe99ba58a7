package main

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/config"
	"github.com/Theo-jobs/family-ordering-system/consumer"
)

func main() {
	cfg := config.LoadConfig()

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	log.Infof("Starting Kitchen Consumer with %d workers", cfg.NumWorkers)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to RabbitMQ")
	}
	defer conn.Close()

	// Declare the queue so the consumer can start before the server.
	setupCh, err := conn.Channel()
	if err != nil {
		log.WithError(err).Fatal("failed to open a channel")
	}
	_, err = setupCh.QueueDeclare(
		cfg.RabbitMQQueue, // name
		true,              // durable
		false,             // delete when unused
		false,             // exclusive
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		log.WithError(err).Fatal("failed to declare queue")
	}
	setupCh.Close()

	log.Infof("Connected to queue: %s", cfg.RabbitMQQueue)

	tracker := consumer.NewPrepTracker(log)

	var wg sync.WaitGroup
	for i := 0; i < cfg.NumWorkers; i++ {
		ch, err := conn.Channel()
		if err != nil {
			log.WithError(err).Fatalf("failed to open channel for worker %d", i+1)
		}
		worker := consumer.NewWorker(i+1, ch, cfg.RabbitMQQueue, tracker, log)

		wg.Add(1)
		go worker.Start(&wg)
	}

	log.Infof("All %d workers started", cfg.NumWorkers)

	// Wait for interrupt signal to gracefully shut down
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal, stopping workers...")

	// Closing the connection closes every channel and drains Start loops.
	conn.Close()
	wg.Wait()

	tracker.PrintSummary()

	log.Info("Kitchen Consumer shut down gracefully")
}
