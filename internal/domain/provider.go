package domain

import (
	"github.com/google/wire"

	domainsearch "jan-server/services/search-web-tool/internal/domain/search"
)

// DomainProvider provides all domain services
var DomainProvider = wire.NewSet(
	domainsearch.NewSearchService,
)
