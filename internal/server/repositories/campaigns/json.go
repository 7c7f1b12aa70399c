package campaigns

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

// JSONRepository keeps the campaign collection in one JSON array, rewritten
// wholesale on mutation under a mutex. The id counter starts above the
// highest id found in the snapshot and only increments, so interleaved
// deletes and creates cannot reuse an id within a process lifetime.
type JSONRepository struct {
	path   string
	mu     sync.Mutex
	nextID int64
}

func NewJSONRepository(path string) *JSONRepository {
	return &JSONRepository{path: path}
}

func (r *JSONRepository) load() ([]models.Campaign, error) {
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

	var list []models.Campaign
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return list, nil
}

func (r *JSONRepository) save(list []models.Campaign) error {
	raw, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return filex.WriteFileAtomic(r.path, raw)
}

func (r *JSONRepository) Create(ctx context.Context, c *models.Campaign) (*models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}

	if r.nextID == 0 {
		r.nextID = 1
		for _, existing := range list {
			if existing.ID >= r.nextID {
				r.nextID = existing.ID + 1
			}
		}
	}

	c.ID = r.nextID
	r.nextID++

	list = append(list, *c)
	if err := r.save(list); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *JSONRepository) List(ctx context.Context) ([]models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *JSONRepository) Get(ctx context.Context, id int64) (*models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, c := range list {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("campaign %d: %w", id, common.ErrorNotFound)
}

func (r *JSONRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.load()
	if err != nil {
		return err
	}

	kept := list[:0:0]
	for _, c := range list {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(list) {
		return fmt.Errorf("campaign %d: %w", id, common.ErrorNotFound)
	}
	return r.save(kept)
}
