package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/upliftapp/gymstatus/internal/adapters/gymprovider"
	"github.com/upliftapp/gymstatus/internal/app"
	"github.com/upliftapp/gymstatus/internal/domain"
)

// Prints the status of every gym, optionally at a given RFC3339 time:
//
//	go run ./cmd/get-gyms [2023-12-25T12:00:00Z]
func main() {
	// .env is optional
	_ = godotenv.Load()

	graphQLURL := os.Getenv("UPLIFT_GRAPHQL_URL")
	if graphQLURL == "" {
		log.Fatal("No GraphQL URL provided")
	}

	at := time.Now()
	if len(os.Args) >= 2 {
		parsed, err := time.Parse(time.RFC3339, os.Args[1])
		if err != nil {
			log.Fatalf("Invalid time %q: %v", os.Args[1], err)
		}
		at = parsed
	}

	httpClient := &http.Client{Timeout: 10 * time.Second}

	provider, err := gymprovider.NewGraphQL(httpClient, graphQLURL, os.Getenv("UPLIFT_API_TOKEN"))
	if err != nil {
		log.Fatalf("Failed to create gym provider: %v", err)
	}

	getGymStatuses := app.BuildGetGymStatuses(provider.GetGyms, func() time.Time { return at })

	gymStatuses, err := getGymStatuses(context.Background())
	if err != nil {
		log.Fatalf("Failed to get gyms: %v", err)
	}

	for _, gymStatus := range gymStatuses {
		fmt.Printf("%s (%s): %s\n", gymStatus.Name, gymStatus.ID, describe(gymStatus.Status))
		for _, facility := range gymStatus.Facilities {
			fmt.Printf("  %-40s %-8s %s\n", facility.Name, facility.Type, describe(facility.Status))
		}
	}
}

func describe(status domain.Status) string {
	switch s := status.(type) {
	case domain.Open:
		return fmt.Sprintf("open until %s", s.CloseTime.Local().Format(time.Kitchen))
	case domain.Closed:
		if s.OpenTime.Equal(domain.FarFuture) {
			return "closed"
		}
		return fmt.Sprintf("closed until %s", s.OpenTime.Local().Format("Mon "+time.Kitchen))
	default:
		return "unknown"
	}
}
