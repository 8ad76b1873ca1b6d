// rag/local_test.go
package rag

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

func writeKnowledge(t *testing.T, namespace string, docs map[string]string) string {
	t.Helper()
	root := t.TempDir()
	folder := filepath.Join(root, namespace)
	require.NoError(t, os.MkdirAll(folder, 0o755))
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(folder, name), []byte(content), 0o644))
	}
	return root
}

func TestSearchReturnsDocsAndTemplatedAnswer(t *testing.T) {
	root := writeKnowledge(t, "clinical", map[string]string{
		"intake.md": "# Cardiology Intake\n\nTriage within 10 minutes.",
		"meds.md":   "# Medication Reconciliation\n\nReconcile at admission.",
	})
	lk := NewLocalKnowledge(root)
	claims := model.Claims{Role: "Physician", Department: "cardiology"}

	docs, answer := lk.Search("clinical", "intake protocol", claims, 5)
	require.Len(t, docs, 2)
	assert.Equal(t, "# Cardiology Intake", docs[0].Metadata["title"])

	assert.Contains(t, answer, "[LOCAL]")
	assert.Contains(t, answer, "Physician")
	assert.Contains(t, answer, "cardiology")
	assert.Contains(t, answer, "intake protocol")
}

func TestSearchBoundsDocCount(t *testing.T) {
	root := writeKnowledge(t, "clinical", map[string]string{
		"a.md": "# A",
		"b.md": "# B",
		"c.md": "# C",
	})
	lk := NewLocalKnowledge(root)

	docs, _ := lk.Search("clinical", "q", model.Claims{Role: "Nurse"}, 2)
	assert.Len(t, docs, 2)
}

func TestSearchSortsDocsByName(t *testing.T) {
	root := writeKnowledge(t, "clinical", map[string]string{
		"b-second.md": "# Second",
		"a-first.md":  "# First",
	})
	lk := NewLocalKnowledge(root)

	docs, _ := lk.Search("clinical", "q", model.Claims{Role: "Nurse"}, 5)
	require.Len(t, docs, 2)
	assert.Equal(t, "# First", docs[0].Metadata["title"])
	assert.Equal(t, "# Second", docs[1].Metadata["title"])
}

func TestSearchMissingNamespaceIsNotAFault(t *testing.T) {
	lk := NewLocalKnowledge(t.TempDir())

	docs, answer := lk.Search("nonexistent", "anything", model.Claims{}, 5)
	assert.Empty(t, docs)
	assert.Contains(t, answer, "No local docs found")
	assert.Contains(t, answer, "Unknown", "missing claims render as Unknown")
}

func TestSearchIgnoresNonMarkdownFiles(t *testing.T) {
	root := writeKnowledge(t, "clinical", map[string]string{
		"doc.md":    "# Doc",
		"notes.txt": "not markdown",
	})
	lk := NewLocalKnowledge(root)

	docs, _ := lk.Search("clinical", "q", model.Claims{Role: "Nurse"}, 5)
	assert.Len(t, docs, 1)
}
