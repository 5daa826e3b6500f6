package catalog_repo

import (
	"bagostock/internal/domain/catalogs/client"
	"bagostock/internal/infrastructure/storage/postgres"
)

var _ client.Repository = (*ClientRepo)(nil)

// ClientRepo stores clients.
type ClientRepo struct {
	*BaseCatalogRepo[*client.Client]
}

func NewClientRepo(txm *postgres.TxManager) *ClientRepo {
	return &ClientRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"clients",
			"client",
			func() *client.Client { return &client.Client{} },
		),
	}
}
