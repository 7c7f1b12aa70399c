package users

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/Berkcanaskin/stellar/internal/common"
	"github.com/Berkcanaskin/stellar/internal/filex"
	"github.com/Berkcanaskin/stellar/internal/server/models"
)

// JSONRepository stores the user collection as a single JSON array,
// rewritten wholesale on every mutation. A per-collection mutex serializes
// read-modify-write cycles so concurrent writers cannot lose updates.
// It implements both Repository and Vault.
type JSONRepository struct {
	path string
	mu   sync.Mutex
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

// load reads the snapshot. A missing file is an empty collection.
func (r *JSONRepository) load() ([]models.User, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var list []models.User
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return list, nil
}

func (r *JSONRepository) save(list []models.User) error {
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return filex.WriteFileAtomic(r.path, raw)
}

func findUser(list []models.User, username string) int {
	for i := range list {
		if list[i].UserName == username {
			return i
		}
	}
	return -1
}

func (r *JSONRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	if findUser(list, user.UserName) >= 0 {
		return nil, fmt.Errorf("user %q: %w", user.UserName, common.ErrorAlreadyExists)
	}

	list = append(list, *user)
	if err := r.save(list); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *JSONRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	i := findUser(list, username)
	if i < 0 {
		return nil, common.ErrorNotFound
	}

	u := list[i]
	redacted := make([]models.WalletRecord, len(u.Wallets))
	for j, w := range u.Wallets {
		redacted[j] = w.Redacted()
	}
	u.Wallets = redacted
	return &u, nil
}

func (r *JSONRepository) Update(ctx context.Context, username string, patch models.UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return err
	}
	i := findUser(list, username)
	if i < 0 {
		return common.ErrorNotFound
	}

	if patch.PassSalt != nil {
		list[i].PassSalt = patch.PassSalt
	}
	if patch.PassHash != nil {
		list[i].PassHash = patch.PassHash
	}
	return r.save(list)
}

func (r *JSONRepository) AddWallet(ctx context.Context, username string, w models.WalletRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return err
	}
	i := findUser(list, username)
	if i < 0 {
		return common.ErrorNotFound
	}
	for _, existing := range list[i].Wallets {
		if existing.PublicKey == w.PublicKey {
			return fmt.Errorf("wallet %s: %w", w.PublicKey, common.ErrorAlreadyExists)
		}
	}

	list[i].Wallets = append(list[i].Wallets, w)
	return r.save(list)
}

func (r *JSONRepository) RemoveWallet(ctx context.Context, username, publicKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return err
	}
	i := findUser(list, username)
	if i < 0 {
		return common.ErrorNotFound
	}

	kept := list[i].Wallets[:0:0]
	for _, w := range list[i].Wallets {
		if w.PublicKey != publicKey {
			kept = append(kept, w)
		}
	}
	if len(kept) == len(list[i].Wallets) {
		// absent key, nothing to persist
		return nil
	}

	list[i].Wallets = kept
	return r.save(list)
}

func (r *JSONRepository) ListWallets(ctx context.Context, username string) ([]models.WalletRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	i := findUser(list, username)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	return append([]models.WalletRecord(nil), list[i].Wallets...), nil
}

func (r *JSONRepository) Secret(ctx context.Context, username, publicKey string) (string, error) {
	wallets, err := r.ListWallets(ctx, username)
	if err != nil {
		return "", err
	}
	for _, w := range wallets {
		if w.PublicKey == publicKey && w.HasSecret() {
			return w.Secret, nil
		}
	}
	return "", fmt.Errorf("no stored secret for %s: %w", publicKey, common.ErrorNotFound)
}
