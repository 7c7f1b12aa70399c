package repomanager

import (
	"path/filepath"

	"github.com/Berkcanaskin/stellar/internal/filex"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/campaigns"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/users"
)

// JSONRepositoryManager serves repositories backed by JSON snapshot files
// under one data directory.
type JSONRepositoryManager struct {
	users     *users.JSONRepository
	campaigns *campaigns.JSONRepository
}

func NewJSONRepositoryManager(dataDir string) (*JSONRepositoryManager, error) {
	if err := filex.EnsureDir(dataDir); err != nil {
		return nil, err
	}
	return &JSONRepositoryManager{
		users:     users.NewJSONRepository(filepath.Join(dataDir, "users.json")),
		campaigns: campaigns.NewJSONRepository(filepath.Join(dataDir, "campaigns.json")),
	}, nil
}

func (m *JSONRepositoryManager) Users() users.Repository { return m.users }

// Vault returns the same store through its key-material interface. The JSON
// backend holds both views in one file; the split is what keeps secrets out
// of profile-serving code paths.
func (m *JSONRepositoryManager) Vault() users.Vault { return m.users }

func (m *JSONRepositoryManager) Campaigns() campaigns.Repository { return m.campaigns }

func (m *JSONRepositoryManager) Close() error { return nil }
