package gymprovider

import (
	"context"
	"net/http"

	"github.com/upliftapp/gymstatus/internal/domain"
)

type GymProvider interface {
	GetGyms(ctx context.Context) ([]domain.Gym, error)
}

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}
