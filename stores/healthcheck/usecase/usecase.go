package usecase

import (
	"github.com/x-xyz/nftcarousel/base/ctx"
	"github.com/x-xyz/nftcarousel/base/env"
	hcdomain "github.com/x-xyz/nftcarousel/domain/healthcheck"
)

type impl struct {
	repo hcdomain.HealthCheckRepo
}

// New creates the usecase checking every dependency the service cannot run without
func New(repo hcdomain.HealthCheckRepo) hcdomain.HealthCheckUsecase {
	return &impl{
		repo: repo,
	}
}

func (im *impl) Check(context ctx.Ctx) hcdomain.Report {
	report := hcdomain.Report{
		Healthy: true,
		Pod:     env.PodName(),
		Checks:  map[string]string{},
	}

	report.Checks["redis"] = hcdomain.StatusOk
	if err := im.repo.PingCache(context); err != nil {
		report.Healthy = false
		report.Checks["redis"] = err.Error()
	}

	return report
}
