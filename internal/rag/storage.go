package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sandevgo/sagebot/internal/core"
	"github.com/sandevgo/sagebot/pkg/log"
)

const (
	knowledgeFile    = "knowledge_base.json"
	associationsFile = "learned_queries.json"
)

type knowledgeSnapshot struct {
	Metadata  snapshotMetadata `json:"metadata"`
	Documents []core.Document  `json:"documents"`
}

type snapshotMetadata struct {
	LastUpdated   time.Time `json:"last_updated"`
	DocumentCount int       `json:"document_count"`
	Source        string    `json:"source"`
}

// FileStorage serializes the document collection and the association table
// as whole files on every write. Small-scale by design: the collections are
// append-only and there is a single writer.
type FileStorage struct {
	dir string
	mu  sync.RWMutex
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (s *FileStorage) LoadDocuments(ctx context.Context) ([]core.Document, error) {
	s.mu.RLock()
	data, err := os.ReadFile(filepath.Join(s.dir, knowledgeFile))
	s.mu.RUnlock()

	if err != nil {
		if os.IsNotExist(err) {
			log.FromCtx(ctx).Info().Msg("knowledge base not found, starting empty")
			if err := s.SaveDocuments(ctx, nil); err != nil {
				return nil, fmt.Errorf("create empty knowledge base: %w", err)
			}
			return nil, nil
		}
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	var snap knowledgeSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	return snap.Documents, nil
}

func (s *FileStorage) SaveDocuments(ctx context.Context, docs []core.Document) error {
	snap := knowledgeSnapshot{
		Metadata: snapshotMetadata{
			LastUpdated:   time.Now(),
			DocumentCount: len(docs),
			Source:        "dynamic_learning",
		},
		Documents: docs,
	}
	if snap.Documents == nil {
		snap.Documents = []core.Document{}
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal knowledge base: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create knowledge directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, knowledgeFile), data, 0644); err != nil {
		return fmt.Errorf("write knowledge base: %w", err)
	}
	return nil
}

func (s *FileStorage) LoadAssociations(ctx context.Context) (map[string][]string, error) {
	s.mu.RLock()
	data, err := os.ReadFile(filepath.Join(s.dir, associationsFile))
	s.mu.RUnlock()

	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("read associations: %w", err)
	}

	assoc := make(map[string][]string)
	if err := json.Unmarshal(data, &assoc); err != nil {
		return nil, fmt.Errorf("parse associations: %w", err)
	}
	return assoc, nil
}

func (s *FileStorage) SaveAssociations(ctx context.Context, assoc map[string][]string) error {
	data, err := json.MarshalIndent(assoc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal associations: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create knowledge directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, associationsFile), data, 0644); err != nil {
		return fmt.Errorf("write associations: %w", err)
	}
	return nil
}
