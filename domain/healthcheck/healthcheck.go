package healthcheck

import (
	"github.com/x-xyz/nftcarousel/base/ctx"
)

const StatusOk = "ok"

// Report is the outcome of one health check, Checks maps a dependency to "ok" or its error
type Report struct {
	Healthy bool              `json:"healthy"`
	Pod     string            `json:"pod,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthCheckUsecase represents the healthCheck's usecases
type HealthCheckUsecase interface {
	Check(context ctx.Ctx) Report
}

// HealthCheckRepo is repository layer of healthCheck
type HealthCheckRepo interface {
	PingCache(context ctx.Ctx) error
}
