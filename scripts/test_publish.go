// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type DiscoveryEvent struct {
	EventID    uuid.UUID  `json:"event_id"`
	SessionID  uuid.UUID  `json:"session_id"`
	Type       string     `json:"type"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	AreaID     *uuid.UUID `json:"area_id,omitempty"`
	Term       string     `json:"term,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

func ptr[T any](v T) *T {
	return &v
}

func main() {
	redisAddr := flag.String("redis", "localhost:6380", "Redis address for streams")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое событие выбора property
	event := DiscoveryEvent{
		EventID:    uuid.New(),
		SessionID:  uuid.New(),
		Type:       "property_selected",
		PropertyID: ptr(uuid.New()),
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:discovery:events",
		Values: map[string]interface{}{"data": string(data)},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published discovery event %s (message %s)\n", event.EventID, id)
	fmt.Println("Check worker logs and the discovery_events table")
}
