package health

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/ThanathornKKU/catalog-service/internal/domain"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/logx"
	"github.com/ThanathornKKU/catalog-service/internal/transport/web/mw"
	v1 "github.com/ThanathornKKU/catalog-service/internal/transport/web/v1"
)

type Pinger interface {
	Ping(context.Context) error
}

type Handler struct {
	Log    *log.Logger
	DB     Pinger
	Cache  Pinger
	Broker Pinger
}

// Liveness godoc
// @Summary      Liveness probe
// @Description  Reports whether the process is up (no dependency checks)
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.APIEnvelope{data=string}
// @Router       /v1/healthz [get]
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	const op = "health.liveness"
	reqID := mw.RequestIDFromCtx(r.Context())

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOKData(w, r, "ok")
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  Pings Postgres, Redis and the Kafka broker
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.APIEnvelope{data=string}
// @Failure      503  {object}  domain.APIEnvelope
// @Router       /v1/readyz [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	const op = "health.readiness"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "db ping failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnavailable)
		return
	}

	if err := h.Cache.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "cache ping failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnavailable)
		return
	}

	if err := h.Broker.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "broker ping failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnavailable)
		return
	}

	logx.Info(h.Log, reqID, op, "ready")
	v1.WriteOKData(w, r, "ready")
}
