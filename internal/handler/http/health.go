package http

import (
	"context"
	"net/http"

	"github.com/dayflow-hr/dayflow-backend-go/internal/handler/http/response"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) bool

type HealthStatus struct {
	DB    bool `json:"db"`
	Redis bool `json:"redis"`
}

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	db    HealthCheck
	redis HealthCheck
}

// NewHealthHandler takes the database and Redis probes. A nil redis probe
// reports false, meaning in-process fallbacks are in use.
func NewHealthHandler(db, redis HealthCheck) HealthHandler {
	return &healthHandlerImpl{db: db, redis: redis}
}

func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{DB: h.db(r.Context())}
	if h.redis != nil {
		status.Redis = h.redis(r.Context())
	}

	if !status.DB {
		response.Unavailable(w, "database unreachable", status)
		return
	}
	response.Success(w, status)
}
