// Package ingest loads contributor data from JSON documents into the store.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/schema"
)

// Document is the shape of an ingestable JSON file. All three sections are
// optional; missing sections are skipped.
type Document struct {
	Contributors []schema.Contributor        `json:"contributors"`
	Definitions  []schema.ActivityDefinition `json:"definitions"`
	Activities   []schema.Activity           `json:"activities"`
}

// Result counts what one ingest run touched.
type Result struct {
	Contributors int
	Definitions  int
	Activities   int
}

// LoadDocument reads and decodes one ingest file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ingest file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse ingest file: %w", err)
	}
	return &doc, nil
}

// Apply writes a document into the store. Contributors and definitions are
// upserted; activities are insert-only keyed by slug, so re-applying the
// same document is a no-op.
func Apply(ctx context.Context, store contract.Store, doc *Document) (Result, error) {
	var res Result

	// Definitions first so activity foreign keys resolve.
	for _, d := range doc.Definitions {
		if err := store.UpsertDefinition(ctx, d); err != nil {
			return res, fmt.Errorf("failed to upsert definition '%s': %w", d.Slug, err)
		}
		res.Definitions++
	}
	for _, c := range doc.Contributors {
		if err := store.UpsertContributor(ctx, c); err != nil {
			return res, fmt.Errorf("failed to upsert contributor '%s': %w", c.Username, err)
		}
		res.Contributors++
	}
	// Every query side INNER JOINs the catalog, so an activity with an
	// unknown definition slug would be stored but never surface anywhere.
	defs, err := store.ActivityDefinitions(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to load activity catalog: %w", err)
	}
	catalog := make(map[string]struct{}, len(defs))
	for _, d := range defs {
		catalog[d.Slug] = struct{}{}
	}

	for _, a := range doc.Activities {
		if _, ok := catalog[a.DefinitionSlug]; !ok {
			return res, fmt.Errorf("activity '%s' references unknown definition '%s'", a.Slug, a.DefinitionSlug)
		}
		if err := store.InsertActivity(ctx, a); err != nil {
			return res, fmt.Errorf("failed to insert activity '%s': %w", a.Slug, err)
		}
		res.Activities++
	}

	return res, nil
}

// IngestFile loads one file and applies it in a single pass.
func IngestFile(ctx context.Context, store contract.Store, path string) (Result, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return Result{}, err
	}
	return Apply(ctx, store, doc)
}
