package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/posmatch/go-position-scorer/config"
	"github.com/posmatch/go-position-scorer/index"
	internalErrors "github.com/posmatch/go-position-scorer/internal/errors"
	"github.com/posmatch/go-position-scorer/internal/persistence"
	"github.com/posmatch/go-position-scorer/internal/search"
	"github.com/posmatch/go-position-scorer/model"
	"github.com/posmatch/go-position-scorer/services"
	"github.com/posmatch/go-position-scorer/store"
)

const (
	dataDirPerm       = 0750
	settingsFile      = "settings.gob"
	termVectorsFile   = "term_vectors.gob"
	documentStoreFile = "document_store.gob"
)

// Engine manages multiple scored indexes.
// It implements the services.IndexManager interface.
type Engine struct {
	mu      sync.RWMutex
	indexes map[string]*IndexInstance
	dataDir string
	logger  *slog.Logger
}

// NewEngine creates a new engine rooted at dataDir and loads any indexes
// persisted there on previous runs.
func NewEngine(dataDir string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	eng := &Engine{
		indexes: make(map[string]*IndexInstance),
		dataDir: dataDir,
		logger:  logger,
	}
	if err := os.MkdirAll(dataDir, dataDirPerm); err != nil {
		logger.Warn("could not create data directory, persistence may be unavailable",
			"dir", dataDir, "error", err)
	}
	eng.loadIndexesFromDisk()
	return eng
}

func (e *Engine) loadIndexesFromDisk() {
	items, err := os.ReadDir(e.dataDir)
	if err != nil {
		e.logger.Warn("failed to read data directory, no indexes loaded",
			"dir", e.dataDir, "error", err)
		return
	}

	for _, item := range items {
		if !item.IsDir() {
			continue
		}
		indexName := item.Name()
		indexPath := filepath.Join(e.dataDir, indexName)

		var settings config.IndexSettings
		settingsPath := filepath.Join(indexPath, settingsFile)
		if err := persistence.LoadGob(settingsPath, &settings); err != nil {
			e.logger.Warn("failed to load index settings, skipping index",
				"index", indexName, "path", settingsPath, "error", err)
			continue
		}

		// The settings name must match the directory name.
		if settings.Name != indexName {
			e.logger.Warn("settings name does not match directory name, skipping index",
				"settings_name", settings.Name, "dir_name", indexName)
			continue
		}

		docStore := &store.DocumentStore{}
		dsPath := filepath.Join(indexPath, documentStoreFile)
		if err := persistence.LoadGob(dsPath, docStore); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				e.logger.Warn("failed to load document store, starting empty",
					"index", indexName, "error", err)
			}
			docStore.Docs = make(map[uint32]model.Document)
			docStore.ExternalIDtoInternalID = make(map[string]uint32)
		}

		termVectors := &index.TermVectorIndex{Settings: &settings}
		tvPath := filepath.Join(indexPath, termVectorsFile)
		if err := persistence.LoadGob(tvPath, termVectors); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				e.logger.Warn("failed to load term vectors, starting empty",
					"index", indexName, "error", err)
			}
			termVectors.Docs = make(map[uint32]index.DocumentVectors)
		}

		instance, err := newLoadedIndexInstance(&settings, termVectors, docStore, e.logger)
		if err != nil {
			e.logger.Error("failed to assemble services for loaded index, skipping",
				"index", indexName, "error", err)
			continue
		}

		e.indexes[indexName] = instance
		e.logger.Info("loaded index", "index", indexName, "documents", len(docStore.Docs))
	}
}

// CreateIndex creates a new index with the given settings and persists it.
func (e *Engine) CreateIndex(settings config.IndexSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if strings.TrimSpace(settings.Name) == "" {
		return internalErrors.NewValidationError("name", "index name cannot be empty")
	}
	if _, exists := e.indexes[settings.Name]; exists {
		return internalErrors.NewIndexAlreadyExistsError(settings.Name)
	}

	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return internalErrors.NewValidationError("settings", strings.Join(problems, "; "))
	}

	instance, err := NewIndexInstance(settings, e.logger)
	if err != nil {
		return fmt.Errorf("failed to create new index instance for '%s': %w", settings.Name, err)
	}

	indexPath := filepath.Join(e.dataDir, settings.Name)
	if err := os.MkdirAll(indexPath, dataDirPerm); err != nil {
		return fmt.Errorf("failed to create directory for index %s: %w", settings.Name, err)
	}

	if err := persistence.SaveGob(filepath.Join(indexPath, settingsFile), settings); err != nil {
		return fmt.Errorf("failed to save settings for index %s: %w", settings.Name, err)
	}
	if err := persistence.SaveGob(filepath.Join(indexPath, termVectorsFile), instance.TermVectors); err != nil {
		return fmt.Errorf("failed to save initial term vectors for %s: %w", settings.Name, err)
	}
	if err := persistence.SaveGob(filepath.Join(indexPath, documentStoreFile), instance.DocumentStore); err != nil {
		return fmt.Errorf("failed to save initial document store for %s: %w", settings.Name, err)
	}

	e.indexes[settings.Name] = instance
	e.logger.Info("index created", "index", settings.Name)
	return nil
}

// GetIndex retrieves an index by its name.
func (e *Engine) GetIndex(name string) (services.IndexAccessor, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.indexes[name]
	if !exists {
		return nil, internalErrors.NewIndexNotFoundError(name)
	}
	return instance, nil
}

// GetIndexSettings retrieves a copy of the settings for a specific index.
func (e *Engine) GetIndexSettings(name string) (config.IndexSettings, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	instance, exists := e.indexes[name]
	if !exists {
		return config.IndexSettings{}, internalErrors.NewIndexNotFoundError(name)
	}
	return *instance.settings, nil
}

// UpdateIndexSettings updates the settings for an existing index and persists
// them. The searcher is rebuilt so scoring picks up the new configuration;
// existing documents are not re-indexed.
func (e *Engine) UpdateIndexSettings(name string, newSettings config.IndexSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	instance, exists := e.indexes[name]
	if !exists {
		return internalErrors.NewIndexNotFoundError(name)
	}

	if newSettings.Name != "" && newSettings.Name != name {
		return internalErrors.NewValidationError("name",
			fmt.Sprintf("cannot change index name from '%s' to '%s'", name, newSettings.Name))
	}
	newSettings.Name = name

	newSettings.ApplyDefaults()
	if problems := newSettings.Validate(); len(problems) > 0 {
		return internalErrors.NewValidationError("settings", strings.Join(problems, "; "))
	}

	searchService, err := search.NewService(instance.TermVectors, instance.DocumentStore, &newSettings, e.logger)
	if err != nil {
		return fmt.Errorf("failed to rebuild search service with new settings for '%s': %w", name, err)
	}

	instance.settings = &newSettings
	instance.TermVectors.Settings = &newSettings
	instance.setSearcher(searchService)

	settingsPath := filepath.Join(e.dataDir, name, settingsFile)
	if err := persistence.SaveGob(settingsPath, newSettings); err != nil {
		e.logger.Error("in-memory settings updated but persistence failed, disk is stale",
			"index", name, "error", err)
		return fmt.Errorf("failed to save updated settings for index '%s': %w", name, err)
	}

	e.logger.Info("index settings updated", "index", name)
	return nil
}

// DeleteIndex removes an index by its name from memory and disk.
func (e *Engine) DeleteIndex(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.indexes[name]; !exists {
		indexPath := filepath.Join(e.dataDir, name)
		if _, err := os.Stat(indexPath); os.IsNotExist(err) {
			return internalErrors.NewIndexNotFoundError(name)
		}
	} else {
		delete(e.indexes, name)
	}

	indexPath := filepath.Join(e.dataDir, name)
	if err := os.RemoveAll(indexPath); err != nil {
		return fmt.Errorf("failed to delete index data directory %s: %w", indexPath, err)
	}
	e.logger.Info("index deleted", "index", name)
	return nil
}

// ListIndexes returns the names of all loaded indexes.
func (e *Engine) ListIndexes() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.indexes))
	for name := range e.indexes {
		names = append(names, name)
	}
	return names
}

// PersistIndexData saves the current term vectors and document store of an
// index to disk. Called after document mutations.
func (e *Engine) PersistIndexData(indexName string) error {
	e.mu.RLock()
	instance, exists := e.indexes[indexName]
	e.mu.RUnlock()

	if !exists {
		return internalErrors.NewIndexNotFoundError(indexName)
	}

	indexPath := filepath.Join(e.dataDir, indexName)

	// TermVectorIndex and DocumentStore take their own read locks in GobEncode.
	if err := persistence.SaveGob(filepath.Join(indexPath, termVectorsFile), instance.TermVectors); err != nil {
		return fmt.Errorf("failed to save term vectors for %s: %w", indexName, err)
	}
	if err := persistence.SaveGob(filepath.Join(indexPath, documentStoreFile), instance.DocumentStore); err != nil {
		return fmt.Errorf("failed to save document store for %s: %w", indexName, err)
	}
	return nil
}
