package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"salonbook/config"
	"salonbook/services/email"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitEmailWorker runs the async email worker in background. Queued sends are
// drained through the EmailJS relay so HTTP handlers never wait on the mail
// provider.
func InitEmailWorker(relay *email.EmailJSRelay) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEmailQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(email.TaskTypeSend, handleEmailTask(relay))

	go monitorRedisConnection()

	go func() {
		log.Println("[EmailWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EmailWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EmailWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleEmailTask(relay *email.EmailJSRelay) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p email.TaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailHandler] Invalid payload: %v", err)
			return err
		}

		if err := relay.Send(ctx, p.TemplateParams); err != nil {
			log.Printf("[EmailHandler] Failed to send email to %s: %v", p.TemplateParams["to_email"], err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisEmailQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[EmailWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
