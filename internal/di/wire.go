//go:build wireinject
// +build wireinject

package di

import (
	"FlipScout/pkg/config"
	"FlipScout/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvidePostgresClient,
		ProvideCache,
		ProvideKafkaProducer,

		// Repositories
		ProvideSignalStore,
		ProvideCandidateSource,
		ProvideSignalStoreInterface,
		ProvideSignalPublisher,

		// Use cases
		ProvideScoreRunner,
		ProvideSignalReader,

		// HTTP surface and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
