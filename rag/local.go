// rag/local.go
package rag

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Jusharra/identity-aware-healthcare-rag-mcp/model"
)

// LocalKnowledge is the retrieval fallback: a directory of markdown docs
// partitioned by namespace, served whenever the primary backend is
// unavailable. It synthesizes an answer consistent with the primary
// response contract.
type LocalKnowledge struct {
	root string
}

func NewLocalKnowledge(root string) *LocalKnowledge {
	return &LocalKnowledge{root: root}
}

// Search returns up to maxDocs documents for the namespace plus a
// templated answer referencing the actor's role, department and the
// query text. A missing namespace directory yields zero docs, not an
// error: fallback unavailability is never a fault.
func (lk *LocalKnowledge) Search(namespace, queryText string, claims model.Claims, maxDocs int) ([]model.Match, string) {
	docs := lk.loadDocs(namespace)
	if maxDocs > 0 && len(docs) > maxDocs {
		docs = docs[:maxDocs]
	}

	role := claims.Role
	if role == "" {
		role = "Unknown"
	}
	dept := claims.Department
	if dept == "" {
		dept = "Unknown"
	}

	var answer string
	if len(docs) == 0 {
		answer = fmt.Sprintf(
			"[LOCAL] No local docs found for namespace '%s'. User role='%s', department='%s'. Query: %s",
			namespace, role, dept, queryText)
	} else {
		titles := make([]string, 0, len(docs))
		for _, d := range docs {
			if t, ok := d.Metadata["title"].(string); ok {
				titles = append(titles, t)
			}
		}
		answer = fmt.Sprintf(
			"[LOCAL] Answer for role='%s', dept='%s', namespace='%s'.\nQuery: %s\nRelevant local docs: %s",
			role, dept, namespace, queryText, strings.Join(titles, ", "))
	}

	return docs, answer
}

func (lk *LocalKnowledge) loadDocs(namespace string) []model.Match {
	folder := filepath.Join(lk.root, namespace)
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var docs []model.Match
	for _, name := range names {
		path := filepath.Join(folder, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var lines []string
		for _, ln := range strings.Split(string(raw), "\n") {
			if trimmed := strings.TrimSpace(ln); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}

		title := strings.TrimSuffix(name, ".md")
		if len(lines) > 0 {
			title = lines[0]
		}
		preview := lines
		if len(preview) > 5 {
			preview = preview[:5]
		}

		docs = append(docs, model.Match{
			ID: path,
			Metadata: map[string]interface{}{
				"title":   title,
				"preview": strings.Join(preview, "\n"),
				"path":    path,
			},
		})
	}
	return docs
}
