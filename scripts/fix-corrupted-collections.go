// Command fix-corrupted-collections scans saved collections in Redis and
// offers to delete documents the game can no longer load
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	redisclient "github.com/KirkDiggler/ecosnap-api/internal/redis"
	"github.com/KirkDiggler/ecosnap-api/internal/repositories/collection"
)

const collectionKeyPattern = "ecosnap:collection:*"

func main() {
	redisURL := os.Getenv("ECOSNAP_REDIS_ADDR")
	if redisURL == "" {
		redisURL = "localhost:6379"
	}

	client, err := redisclient.NewClient(redisURL, nil)
	if err != nil {
		log.Fatal("Failed to create Redis client:", err)
	}
	defer func() { _ = client.Close() }()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	fmt.Println("Connected to Redis:", redisURL)
	fmt.Println("Scanning for corrupted collections...")

	iter := client.Scan(ctx, 0, collectionKeyPattern, 0).Iterator()

	var corruptedKeys []string
	var checkedCount int

	for iter.Next(ctx) {
		key := iter.Val()
		checkedCount++

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			fmt.Printf("Error reading %s: %v\n", key, err)
			continue
		}

		var doc collection.Document
		if err := json.Unmarshal(data, &doc); err != nil {
			fmt.Printf("✗ Corrupted JSON in %s\n", key)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		if doc.Version != collection.SchemaVersion {
			fmt.Printf("✗ Unsupported schema version %d in %s\n", doc.Version, key)
			corruptedKeys = append(corruptedKeys, key)
			continue
		}

		for _, id := range doc.Party {
			if _, ok := doc.Collection[id]; !ok {
				fmt.Printf("• %s lists unowned party card %s (dropped on load)\n", key, id)
			}
		}
	}

	if err := iter.Err(); err != nil {
		log.Fatal("Error during scan:", err)
	}

	fmt.Printf("\nChecked %d keys, found %d corrupted collections\n", checkedCount, len(corruptedKeys))

	if len(corruptedKeys) == 0 {
		fmt.Println("No corrupted data found!")
		return
	}

	fmt.Println("\nCorrupted keys:")
	for _, key := range corruptedKeys {
		fmt.Printf("  - %s\n", key)
	}

	fmt.Print("\nDo you want to DELETE these collections? (yes/no): ")
	var response string
	_, _ = fmt.Scanln(&response)

	if response != "yes" {
		fmt.Println("Aborted - no changes made")
		return
	}

	for _, key := range corruptedKeys {
		if err := client.Del(ctx, key).Err(); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", key, err)
		} else {
			fmt.Printf("Deleted %s\n", key)
		}
	}
	fmt.Println("\nCleanup complete!")
}
