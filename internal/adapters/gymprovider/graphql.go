package gymprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/upliftapp/gymstatus/internal/constants"
	"github.com/upliftapp/gymstatus/internal/domain"
	"github.com/upliftapp/gymstatus/internal/reporting"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const getAllGymsQuery = `query GetAllGyms {
  gyms {
    id
    name
    facilities {
      id
      name
      facilityType
      hours {
        start
        end
        isWomen
        isSpecial
        courtType
      }
    }
  }
}`

type graphQLRequest struct {
	OperationName string `json:"operationName"`
	Query         string `json:"query"`
}

type graphQLMetricsCollection struct {
	requestCount metric.Int64Counter
	gymCount     metric.Int64Histogram
}

func setupGraphQLMetrics(meter metric.Meter) (graphQLMetricsCollection, error) {
	requestCount, err := meter.Int64Counter("gymprovider/graphql/request_count")
	if err != nil {
		return graphQLMetricsCollection{}, fmt.Errorf("failed to create request count metric: %w", err)
	}

	gymCount, err := meter.Int64Histogram("gymprovider/graphql/gym_count")
	if err != nil {
		return graphQLMetricsCollection{}, fmt.Errorf("failed to create gym count metric: %w", err)
	}

	return graphQLMetricsCollection{
		requestCount: requestCount,
		gymCount:     gymCount,
	}, nil
}

type graphQL struct {
	httpClient HttpClient
	url        string
	apiToken   string

	metrics graphQLMetricsCollection
	tracer  trace.Tracer
}

// NewGraphQL creates a provider fetching gyms from the GraphQL backend at url.
// apiToken is sent as a bearer token when non-empty.
func NewGraphQL(httpClient HttpClient, url string, apiToken string) (*graphQL, error) {
	const name = "gymstatus/gymprovider/graphql"

	metrics, err := setupGraphQLMetrics(otel.Meter(name))
	if err != nil {
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}

	return &graphQL{
		httpClient: httpClient,
		url:        url,
		apiToken:   apiToken,

		metrics: metrics,
		tracer:  otel.Tracer(name),
	}, nil
}

func (g *graphQL) GetGyms(ctx context.Context) ([]domain.Gym, error) {
	ctx, span := g.tracer.Start(ctx, "GraphQL.GetGyms")
	defer span.End()

	fail := func(err error, extras ...map[string]string) ([]domain.Gym, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		reporting.Report(ctx, err, extras...)
		return nil, err
	}

	body, err := json.Marshal(graphQLRequest{
		OperationName: "GetAllGyms",
		Query:         getAllGymsQuery,
	})
	if err != nil {
		return fail(fmt.Errorf("failed to marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return fail(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("User-Agent", constants.USER_AGENT)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiToken)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("failed to send request: %w", err))
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Errorf("failed to read response body: %w", err))
	}

	g.metrics.requestCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status_code", strconv.Itoa(resp.StatusCode)),
	))
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	gyms, err := gymsFromGraphQLResponse(ctx, resp.StatusCode, data)
	if err != nil {
		return fail(fmt.Errorf("failed to get gyms from graphql response: %w", err), map[string]string{
			"data":   string(data),
			"status": strconv.Itoa(resp.StatusCode),
		})
	}

	g.metrics.gymCount.Record(ctx, int64(len(gyms)))

	return gyms, nil
}
