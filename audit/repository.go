// audit/repository.go
package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	gw_errors "github.com/Jusharra/identity-aware-healthcare-rag-mcp/errors"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

// Repository is the evidence sink: an append-only sequence of decision
// records plus a read path for audit inspection.
type Repository interface {
	Append(ctx context.Context, record model.DecisionRecord) error
	QueryLogs(ctx context.Context, from, to time.Time, actorSub, eventType string) ([]model.DecisionRecord, error)
	Close() error
}

// FileRepository appends newline-delimited JSON records to a local file.
// Each record is serialized first and written with a single Write call
// under the mutex, so concurrent appends never interleave partial lines.
type FileRepository struct {
	mu   sync.Mutex
	file *os.File
	path string
}

func NewFileRepository(path string) (*FileRepository, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating evidence log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening evidence log: %w", err)
	}
	return &FileRepository{file: file, path: path}, nil
}

func (r *FileRepository) Append(ctx context.Context, record model.DecisionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: marshaling record %s: %v", gw_errors.ErrEvidencePersist, record.RecordID, err)
	}
	data = append(data, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.file.Write(data); err != nil {
		return fmt.Errorf("%w: appending record %s: %v", gw_errors.ErrEvidencePersist, record.RecordID, err)
	}
	return nil
}

// QueryLogs scans the evidence log for records in [from, to], optionally
// filtered by actor subject and event type. Unparseable lines are skipped
// rather than failing the whole query.
func (r *FileRepository) QueryLogs(ctx context.Context, from, to time.Time, actorSub, eventType string) ([]model.DecisionRecord, error) {
	file, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening evidence log for read: %w", err)
	}
	defer file.Close()

	var records []model.DecisionRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var record model.DecisionRecord
		if err := json.Unmarshal(scanner.Bytes(), &record); err != nil {
			continue
		}
		if !from.IsZero() && record.Timestamp.Before(from) {
			continue
		}
		if !to.IsZero() && record.Timestamp.After(to) {
			continue
		}
		if actorSub != "" && record.Actor.Sub != actorSub {
			continue
		}
		if eventType != "" && record.EventType != eventType {
			continue
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning evidence log: %w", err)
	}
	return records, nil
}

func (r *FileRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.file.Close()
}
