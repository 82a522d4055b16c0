package infrastructure

import (
	"github.com/google/wire"
	"github.com/rs/zerolog/log"

	"jan-server/services/search-web-tool/internal/domain/search"
	"jan-server/services/search-web-tool/internal/infrastructure/config"
	"jan-server/services/search-web-tool/internal/infrastructure/deployment"
	"jan-server/services/search-web-tool/internal/infrastructure/serper"
)

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	ProvideConfig,
	ProvideDeployment,
	ProvideSearchClient,
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideDeployment loads the deployment descriptor
func ProvideDeployment(cfg *config.Config) (*deployment.Descriptor, error) {
	descriptor, err := deployment.Load(cfg.DeploymentFile)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("name", descriptor.Name).
		Str("version", descriptor.Version).
		Str("file", cfg.DeploymentFile).
		Msg("deployment descriptor loaded")
	return descriptor, nil
}

// ProvideSearchClient provides the Serper client. Startup fails without an API key.
func ProvideSearchClient(cfg *config.Config) (search.SearchClient, error) {
	client, err := serper.NewClient(serper.ClientConfig{
		APIKey:  cfg.SerperAPIKey,
		BaseURL: cfg.SerperBaseURL,
		Timeout: cfg.SerperTimeout(),
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}
