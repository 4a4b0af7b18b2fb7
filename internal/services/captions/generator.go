package captions

import (
	"context"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/salecaption/internal/interfaces"
	"github.com/ternarybob/salecaption/internal/models"
)

// RunContext is the state a generation pass reads and updates: the catalog snapshot,
// the per-store continuity map, the tone and the day used for template routing.
type RunContext struct {
	Catalog    *models.Catalog
	Continuity map[string]string
	Tone       models.Tone
	Day        time.Time
}

// BatchResult summarizes a batch run.
type BatchResult struct {
	Generated int      `json:"generated"`
	Failed    int      `json:"failed"`
	StoreKeys []string `json:"store_keys"` // processing order
}

// Generator produces captions for analyzed items.
type Generator struct {
	captions  interfaces.CaptionGenerator
	assembler *Assembler
	logger    arbor.ILogger
}

// NewGenerator creates a generator backed by a caption service.
func NewGenerator(captions interfaces.CaptionGenerator, assembler *Assembler, logger arbor.ILogger) *Generator {
	if assembler == nil {
		assembler = NewAssembler(nil)
	}
	return &Generator{captions: captions, assembler: assembler, logger: logger}
}

// GenerateItem builds the prompt for item, calls the caption service and records the
// outcome on the item. Earlier generation diagnostics are cleared first. A successful
// caption, stripped of asterisks, replaces the store's continuity reference.
// It reports whether a caption was produced.
func (g *Generator) GenerateItem(ctx context.Context, rc *RunContext, item *models.AnalyzedItem) bool {
	item.Diagnostics.ResetStage(models.StageGeneration)
	item.Caption = ""
	item.State = models.StateCaptionPending

	store, ok := rc.Catalog.Store(item.StoreKey)
	if !ok {
		item.Diagnostics.Add(models.StageGeneration, models.DiagnosticStoreNotFound, item.StoreKey)
		item.State = models.StateCaptionFailed
		return false
	}

	asm, err := g.assembler.Assemble(Request{
		Item:       item,
		Store:      store,
		Tone:       rc.Tone,
		Continuity: rc.Continuity[item.StoreKey],
		Day:        rc.Day,
	})
	if err != nil {
		item.Diagnostics.Add(models.StageGeneration, models.DiagnosticTemplateNotFound, item.StoreKey)
		item.State = models.StateCaptionFailed
		return false
	}
	for _, code := range asm.Issues {
		item.Diagnostics.Add(models.StageGeneration, code, "")
	}

	text, err := g.captions.Generate(ctx, asm.Prompt)
	if err != nil {
		g.logger.Warn().
			Str("item", item.ID).
			Str("store", item.StoreKey).
			Err(err).
			Msg("Caption generation failed")
		item.Diagnostics.Add(models.StageGeneration, models.DiagnosticCaptionAPIError, err.Error())
		item.State = models.StateCaptionFailed
		return false
	}

	item.Caption = strings.ReplaceAll(text, "*", "")
	item.State = models.StateCaptionReady
	if rc.Continuity != nil {
		rc.Continuity[item.StoreKey] = item.Caption
	}

	g.logger.Debug().
		Str("item", item.ID).
		Str("store", item.StoreKey).
		Str("sale_type", asm.Template.Key).
		Int("issues", len(asm.Issues)).
		Msg("Caption generated")
	return true
}

// GenerateBatch generates captions for the selected items, grouped by store in order
// of first appearance and in original order within a group, so later items of a store
// see the continuity reference left by earlier ones. One item's failure never stops
// the batch; a cancelled context does.
func (g *Generator) GenerateBatch(ctx context.Context, rc *RunContext, items []*models.AnalyzedItem) (BatchResult, error) {
	var order []string
	groups := make(map[string][]*models.AnalyzedItem)
	for _, item := range items {
		if !item.Selected {
			continue
		}
		if _, seen := groups[item.StoreKey]; !seen {
			order = append(order, item.StoreKey)
		}
		groups[item.StoreKey] = append(groups[item.StoreKey], item)
	}

	result := BatchResult{StoreKeys: order}
	for _, storeKey := range order {
		for _, item := range groups[storeKey] {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if g.GenerateItem(ctx, rc, item) {
				result.Generated++
			} else {
				result.Failed++
			}
		}
	}

	g.logger.Info().
		Int("generated", result.Generated).
		Int("failed", result.Failed).
		Int("stores", len(order)).
		Msg("Batch caption generation complete")
	return result, nil
}
