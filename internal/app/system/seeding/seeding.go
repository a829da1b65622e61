// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/dalemusser/stratascout/internal/app/system/contentdoc"
	"github.com/dalemusser/stratascout/internal/domain/models"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Initializer creates the content record only when none exists.
type Initializer interface {
	Initialize(ctx context.Context, doc models.ContentDocument) (bool, error)
}

// LoadSeed reads a YAML (or JSON) seed file and merges it over the defaults.
// Keys missing from the file keep their default values.
func LoadSeed(path string) (models.ContentDocument, []contentdoc.Issue, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return models.ContentDocument{}, nil, err
	}
	var tree any
	if err := yaml.Unmarshal(b, &tree); err != nil {
		return models.ContentDocument{}, nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		return models.ContentDocument{}, nil, fmt.Errorf("convert seed file %s: %w", path, err)
	}
	return contentdoc.Merge(raw, models.DefaultContent())
}

// SeedContent creates the content record from seedFile, or from the built-in
// defaults when seedFile is empty. An existing record is never touched.
func SeedContent(ctx context.Context, store Initializer, seedFile string, logger *zap.Logger) error {
	doc := models.DefaultContent()
	source := "defaults"
	if seedFile != "" {
		seeded, issues, err := LoadSeed(seedFile)
		if err != nil {
			logger.Error("failed to load content seed file",
				zap.String("path", seedFile),
				zap.Error(err))
			return err
		}
		for _, is := range issues {
			logger.Warn("content seed file repaired",
				zap.String("path", is.Path),
				zap.String("issue", is.Message))
		}
		doc, source = seeded, seedFile
	}

	created, err := store.Initialize(ctx, doc)
	if err != nil {
		logger.Error("failed to seed content", zap.Error(err))
		return err
	}
	if created {
		logger.Info("seeded site content", zap.String("source", source))
	}
	return nil
}
