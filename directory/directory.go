// directory/directory.go
package directory

import (
	"context"
	"sync"
)

// UserRecord is one entry in the user directory. The directory is an
// opaque key-value collaborator; the gateway core never persists claims
// here, only tool handlers read and write records.
type UserRecord struct {
	Role           string   `json:"role"`
	MFAEnabled     bool     `json:"mfa_enabled"`
	Disabled       bool     `json:"disabled"`
	Permissions    []string `json:"permissions"`
	TempAdminUntil string   `json:"temp_admin_until,omitempty"`
}

// Directory is the user-directory seam used by identity tools.
type Directory interface {
	Get(ctx context.Context, userID string) (*UserRecord, bool, error)
	Put(ctx context.Context, userID string, record *UserRecord) error
}

// MemoryDirectory is the in-process implementation, used by default and
// in tests.
type MemoryDirectory struct {
	mu    sync.RWMutex
	users map[string]UserRecord
}

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{users: make(map[string]UserRecord)}
}

func (d *MemoryDirectory) Get(ctx context.Context, userID string) (*UserRecord, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	record, ok := d.users[userID]
	if !ok {
		return nil, false, nil
	}
	copied := record
	copied.Permissions = append([]string(nil), record.Permissions...)
	return &copied, true, nil
}

func (d *MemoryDirectory) Put(ctx context.Context, userID string, record *UserRecord) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	copied := *record
	copied.Permissions = append([]string(nil), record.Permissions...)
	d.users[userID] = copied
	return nil
}
