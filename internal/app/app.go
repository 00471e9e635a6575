package app

import (
	"github.com/rs/zerolog"

	"github.com/aristath/fundflow/internal/config"
	"github.com/aristath/fundflow/internal/modules/allocation"
	"github.com/aristath/fundflow/internal/modules/cash_flows"
	"github.com/aristath/fundflow/internal/modules/metrics"
	"github.com/aristath/fundflow/internal/modules/projection"
	"github.com/aristath/fundflow/pkg/formulas"
)

// App wires the analytics services together from a single configuration.
// It is the composition root for embedding callers; each service can also
// be constructed directly when only one engine is needed.
type App struct {
	Config *config.Config

	CashFlows  *cash_flows.Service
	Metrics    *metrics.Service
	Projection *projection.Service
	Allocation *allocation.Service
}

// New builds the service graph from cfg. The IRR solver settings and the
// management fee rate come from the configuration; everything else uses
// the service defaults.
func New(cfg *config.Config, log zerolog.Logger) *App {
	irrOpts := formulas.XIRROptions{
		InitialGuess:  cfg.IRRInitialGuess,
		MaxIterations: cfg.IRRMaxIterations,
		Tolerance:     cfg.IRRTolerance,
	}

	return &App{
		Config:     cfg,
		CashFlows:  cash_flows.NewService(log),
		Metrics:    metrics.NewService(log, irrOpts),
		Projection: projection.NewService(log, cfg.AnnualFeeRate),
		Allocation: allocation.NewService(log),
	}
}
