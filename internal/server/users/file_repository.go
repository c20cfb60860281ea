package users

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/autotransformers/site/internal/common"
	"github.com/autotransformers/site/internal/filex"
)

// FileRepository stores the whole user collection as one JSON document on
// disk. Reads re-load the file so external edits (e.g. by the seeding CLI)
// are picked up; a missing or corrupt file reads as an empty store,
// favoring availability over strict durability. A store-wide mutex makes
// the duplicate check and the rewrite atomic for concurrent registrations.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.readAll() {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *FileRepository) FindByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.readAll() {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *FileRepository) Insert(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := r.readAll()
	for _, u := range all {
		if u.Email == user.Email {
			return common.ErrEmailTaken
		}
	}

	all = append(all, *user)

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := filex.WriteFileAtomic(r.path, data, 0o600); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}

	return nil
}

// readAll loads the collection from disk. Any read or decode failure is
// treated as an empty store rather than an error.
func (r *FileRepository) readAll() []User {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil
	}

	var all []User
	if err := json.Unmarshal(data, &all); err != nil {
		return nil
	}
	return all
}
