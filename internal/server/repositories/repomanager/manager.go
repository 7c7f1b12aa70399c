// Package repomanager wires concrete repository implementations behind a
// single factory so the application can switch between the JSON snapshot
// store and PostgreSQL by configuration alone.
package repomanager

import (
	"github.com/Berkcanaskin/stellar/internal/server/repositories/campaigns"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Vault() users.Vault
	Campaigns() campaigns.Repository
	Close() error
}
