// audit/audit_test.go
package audit

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gw_errors "github.com/Jusharra/identity-aware-healthcare-rag-mcp/errors"
	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

func newTestRepository(t *testing.T) (*FileRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evidence.log.jsonl")
	repo, err := NewFileRepository(path)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func sampleRecord(id, sub, eventType string, ts time.Time) model.DecisionRecord {
	return model.DecisionRecord{
		RecordID:  id,
		Timestamp: ts,
		EventType: eventType,
		Decision:  model.DecisionDeny,
		Actor:     model.Claims{Sub: sub, Role: "Employee"},
		Target:    model.Target{Type: "rag", Scope: "clinical_docs"},
		Reasons:   []string{"Requested scope clinical_docs not in role Employee RAG scopes"},
	}
}

func TestAppendWritesOneJSONLinePerRecord(t *testing.T) {
	repo, path := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Append(ctx, sampleRecord("ev-1", "u1", model.EventRagAccessDenied, now)))
	require.NoError(t, repo.Append(ctx, sampleRecord("ev-2", "u2", model.EventMcpToolDenied, now)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)

	var record model.DecisionRecord
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "ev-1", record.RecordID)
	assert.Equal(t, "u1", record.Actor.Sub)
}

func TestConcurrentAppendsDoNotInterleave(t *testing.T) {
	repo, path := newTestRepository(t)
	ctx := context.Background()
	now := time.Now().UTC()

	const writers = 20
	const perWriter = 25

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				id := fmt.Sprintf("ev-%d-%d", w, i)
				assert.NoError(t, repo.Append(ctx, sampleRecord(id, "u1", model.EventRagAccessDenied, now)))
			}
		}(w)
	}
	wg.Wait()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	count := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var record model.DecisionRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &record), "every line must be a complete JSON record")
		count++
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, writers*perWriter, count)
}

func TestAppendAfterCloseIsPersistError(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Close())

	err := repo.Append(context.Background(), sampleRecord("ev-1", "u1", model.EventRagAccessDenied, time.Now()))
	require.Error(t, err)
	assert.ErrorIs(t, err, gw_errors.ErrEvidencePersist)
}

func TestQueryLogsFilters(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, sampleRecord("ev-1", "u1", model.EventRagAccessDenied, base)))
	require.NoError(t, repo.Append(ctx, sampleRecord("ev-2", "u2", model.EventMcpToolDenied, base.Add(time.Hour))))
	require.NoError(t, repo.Append(ctx, sampleRecord("ev-3", "u1", model.EventRagAccessAllowed, base.Add(2*time.Hour))))

	all, err := repo.QueryLogs(ctx, time.Time{}, time.Time{}, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byActor, err := repo.QueryLogs(ctx, time.Time{}, time.Time{}, "u1", "")
	require.NoError(t, err)
	assert.Len(t, byActor, 2)

	byEvent, err := repo.QueryLogs(ctx, time.Time{}, time.Time{}, "", model.EventMcpToolDenied)
	require.NoError(t, err)
	require.Len(t, byEvent, 1)
	assert.Equal(t, "ev-2", byEvent[0].RecordID)

	byWindow, err := repo.QueryLogs(ctx, base.Add(30*time.Minute), base.Add(90*time.Minute), "", "")
	require.NoError(t, err)
	require.Len(t, byWindow, 1)
	assert.Equal(t, "ev-2", byWindow[0].RecordID)
}

func TestQueryLogsSkipsCorruptLines(t *testing.T) {
	repo, path := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, sampleRecord("ev-1", "u1", model.EventRagAccessDenied, time.Now().UTC())))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{truncated\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, repo.Append(ctx, sampleRecord("ev-2", "u1", model.EventRagAccessDenied, time.Now().UTC())))

	records, err := repo.QueryLogs(ctx, time.Time{}, time.Time{}, "", "")
	require.NoError(t, err)
	assert.Len(t, records, 2, "unparseable lines are skipped, not fatal")
}

func TestRecordDecisionAssignsIDAndTimestamp(t *testing.T) {
	repo, _ := newTestRepository(t)
	svc := NewService(repo, nil)

	id, err := svc.RecordDecision(context.Background(), model.DecisionRecord{
		EventType: model.EventRagAccessAllowed,
		Decision:  model.DecisionAllow,
		Actor:     model.Claims{Sub: "u1", Role: "Physician"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "ev-"))

	records, err := svc.QueryLogs(context.Background(), time.Time{}, time.Time{}, "", "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].RecordID)
	assert.False(t, records[0].Timestamp.IsZero())
}

func TestRecordDecisionGeneratesUniqueIDsConcurrently(t *testing.T) {
	repo, _ := newTestRepository(t)
	svc := NewService(repo, nil)
	ctx := context.Background()

	const calls = 200
	ids := make(chan string, calls)
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := svc.RecordDecision(ctx, model.DecisionRecord{
				EventType: model.EventMcpToolAllowed,
				Decision:  model.DecisionAllow,
				Actor:     model.Claims{Sub: "u1", Role: "IT_Admin"},
			})
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "record id %s issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, calls)
}

func TestRecordDecisionReturnsIDEvenWhenPersistFails(t *testing.T) {
	repo, _ := newTestRepository(t)
	require.NoError(t, repo.Close())
	svc := NewService(repo, nil)

	id, err := svc.RecordDecision(context.Background(), model.DecisionRecord{
		EventType: model.EventRagAccessDenied,
		Decision:  model.DecisionDeny,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, gw_errors.ErrEvidencePersist)
	assert.NotEmpty(t, id, "the id is issued regardless so the caller can still reference it")
}
