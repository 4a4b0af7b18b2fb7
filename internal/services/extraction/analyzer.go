package extraction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ternarybob/arbor"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ternarybob/salecaption/internal/interfaces"
	"github.com/ternarybob/salecaption/internal/models"
	"github.com/ternarybob/salecaption/internal/services/dates"
	"github.com/ternarybob/salecaption/internal/services/pricing"
	"github.com/ternarybob/salecaption/internal/services/stores"
)

var (
	// ErrNoFrameText is returned when no video frame produced a usable analysis.
	ErrNoFrameText = errors.New("video analysis failed: no valid information could be extracted from the video frames")
	// ErrFramesRequired is returned for video uploads without pre-extracted frames.
	ErrFramesRequired = errors.New("video uploads require extracted frames")
	// ErrFileTooLarge is returned for uploads above the configured size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum size")
)

// Upload is one media file handed to the analyzer. Videos carry their sampled
// frames; Data may then be empty.
type Upload struct {
	Name   string
	Data   []byte
	Frames []interfaces.Media
}

// Analyzer turns vision output into analyzed items.
type Analyzer struct {
	vision       interfaces.VisionService
	resolver     *dates.Resolver
	logger       arbor.ILogger
	prompt       string
	maxFrames    int
	maxFileBytes int64
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithMaxFrames bounds the frames analyzed per video (0 means no limit).
func WithMaxFrames(n int) AnalyzerOption {
	return func(a *Analyzer) { a.maxFrames = n }
}

// WithMaxFileBytes rejects uploads larger than n bytes (0 means no limit).
func WithMaxFileBytes(n int64) AnalyzerOption {
	return func(a *Analyzer) { a.maxFileBytes = n }
}

// WithPrompt replaces the analysis instruction text.
func WithPrompt(prompt string) AnalyzerOption {
	return func(a *Analyzer) { a.prompt = prompt }
}

// NewAnalyzer creates an analyzer backed by a vision service.
func NewAnalyzer(vision interfaces.VisionService, resolver *dates.Resolver, logger arbor.ILogger, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		vision:   vision,
		resolver: resolver,
		logger:   logger,
		prompt:   AnalysisPrompt(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze runs vision analysis for one upload and fills item from the answer.
// Failures never propagate: they are recorded as an analysis_failed diagnostic and
// the item keeps its defaults. All earlier diagnostics are cleared.
func (a *Analyzer) Analyze(ctx context.Context, item *models.AnalyzedItem, upload Upload, catalog *models.Catalog) {
	item.Diagnostics = nil
	defer func() { item.State = models.StateAnalyzed }()

	text, err := a.describe(ctx, item, upload)
	if err != nil {
		a.logger.Warn().
			Str("file", upload.Name).
			Err(err).
			Msg("Media analysis failed")
		item.Diagnostics.Add(models.StageAnalysis, models.DiagnosticAnalysisFailed, err.Error())
		return
	}

	a.Apply(item, text, catalog)

	a.logger.Debug().
		Str("file", upload.Name).
		Str("product", item.ProductName).
		Str("store", item.StoreKey).
		Str("dates", item.Dates.String()).
		Int("diagnostics", len(item.Diagnostics)).
		Msg("Media analyzed")
}

func (a *Analyzer) describe(ctx context.Context, item *models.AnalyzedItem, upload Upload) (string, error) {
	if len(upload.Frames) > 0 {
		item.MediaType = "video/frames"
		return a.AnalyzeFrames(ctx, upload.Frames)
	}

	if a.maxFileBytes > 0 && int64(len(upload.Data)) > a.maxFileBytes {
		return "", fmt.Errorf("%w: %s is %d bytes (limit %d)", ErrFileTooLarge, upload.Name, len(upload.Data), a.maxFileBytes)
	}
	mtype := mimetype.Detect(upload.Data)
	item.MediaType = mtype.String()
	if strings.HasPrefix(mtype.String(), "video/") {
		return "", ErrFramesRequired
	}

	text, err := a.vision.Describe(ctx, a.prompt, interfaces.Media{
		Name:     upload.Name,
		MIMEType: mtype.String(),
		Data:     upload.Data,
	})
	if err != nil {
		return "", fmt.Errorf("image analysis failed: %w", err)
	}
	return text, nil
}

// AnalyzeFrames asks the vision service about each frame and keeps the most complete
// answer. It stops at the first answer with every scored field present. Frame failures
// are skipped; ErrNoFrameText is returned when no frame produced any text.
func (a *Analyzer) AnalyzeFrames(ctx context.Context, frames []interfaces.Media) (string, error) {
	best := ""
	bestScore := -1

	for i, frame := range frames {
		if a.maxFrames > 0 && i >= a.maxFrames {
			break
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if frame.MIMEType == "" {
			frame.MIMEType = mimetype.Detect(frame.Data).String()
		}

		text, err := a.vision.Describe(ctx, a.prompt, frame)
		if err != nil {
			a.logger.Debug().Int("frame", i).Err(err).Msg("Frame analysis failed")
			continue
		}

		score := ParseFields(text).Score()
		if score > bestScore && strings.TrimSpace(text) != "" {
			best, bestScore = text, score
			if bestScore >= MaxScore {
				break
			}
		}
	}

	if best == "" {
		return "", ErrNoFrameText
	}
	return best, nil
}

// Apply fills item from raw vision text: product (title-cased), category, brands,
// price, store and sale dates. Unrecognized stores keep the item's current store key.
func (a *Analyzer) Apply(item *models.AnalyzedItem, text string, catalog *models.Catalog) {
	fields := ParseFields(text)

	item.ProductName = titleCase(orDefault(fields.Product, models.UnknownProduct))
	item.Category = orDefault(fields.Category, models.GeneralCategory)
	item.DetectedBrands = orDefault(fields.Brands, models.NoBrands)
	item.Price = pricing.Normalize(fields.Price)

	if fields.Store != "" {
		if key, ok := stores.MatchStore(catalog, fields.Store); ok {
			item.StoreKey = key
		} else {
			item.Diagnostics.Add(models.StageAnalysis, models.DiagnosticStoreUnrecognized, fields.Store)
		}
	}

	res := a.resolver.ResolveRange(fields.SaleDates, item.Dates)
	item.Dates = res.Range
	for _, code := range res.Notes {
		item.Diagnostics.Add(models.StageAnalysis, code, "")
	}
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
