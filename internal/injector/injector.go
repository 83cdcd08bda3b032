//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zengine/zengine/internal/core/config"
	"github.com/zengine/zengine/internal/core/observability/log"
	"github.com/zengine/zengine/internal/engine"
)

func ProvideLogger() *log.Logger {
	wire.Build(log.Provide)
	return log.New(log.LevelDebug)
}

func ProvideEngine(cfg config.Config) *engine.Engine {
	wire.Build(
		engine.New,
		log.Provide,
		wire.Bind(new(log.Log), new(*log.Logger)),
	)
	return nil
}
