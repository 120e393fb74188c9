package order

import (
	"log/slog"
	"time"

	"go.uber.org/fx"

	"github.com/bekzodart/storefront/internal/adapter/catalog"
	"github.com/bekzodart/storefront/internal/config"
)

// Factory builds one submission machine per opened purchase dialog.
type Factory struct {
	submitter  Submitter
	resetDelay time.Duration
	logger     *slog.Logger
}

// NewFactory constructs the machine factory. Machines it builds auto-reset
// that long after a successful submission; zero disables the timer.
func NewFactory(client catalog.Client, resetDelay time.Duration, logger *slog.Logger) *Factory {
	return &Factory{submitter: client, resetDelay: resetDelay, logger: logger}
}

// New returns a fresh machine for one dialog.
func (f *Factory) New() *Machine {
	return NewMachine(f.submitter, f.resetDelay, f.logger)
}

type factoryParams struct {
	fx.In

	Client catalog.Client
	Config *config.Config
	Logger *slog.Logger
}

func newFactory(p factoryParams) *Factory {
	return NewFactory(p.Client, p.Config.SuccessResetDelay, p.Logger)
}

// Module provides the machine factory to the fx container.
var Module = fx.Provide(newFactory)
