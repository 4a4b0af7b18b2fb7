package models

import (
	"fmt"
	"strings"
)

// DiagnosticCode identifies a non-fatal condition recorded against an item for manual review.
type DiagnosticCode string

// DiagnosticCode constants
const (
	// Analysis stage
	DiagnosticAnalysisFailed     DiagnosticCode = "analysis_failed"      // Vision call or frame analysis failed
	DiagnosticStoreUnrecognized  DiagnosticCode = "store_unrecognized"   // Detected store name not in catalog
	DiagnosticSaleDatesMissing   DiagnosticCode = "sale_dates_missing"   // No usable sale dates, defaults used
	DiagnosticDatesReordered     DiagnosticCode = "dates_reordered"      // Start/end swapped to keep start <= end
	DiagnosticEndDateInferred    DiagnosticCode = "end_date_inferred"    // End date set to start + 1 day
	DiagnosticStartDateDefaulted DiagnosticCode = "start_date_defaulted" // Start date not found, default kept

	// Generation stage
	DiagnosticStoreNotFound    DiagnosticCode = "store_not_found"    // Item store key missing from catalog
	DiagnosticTemplateNotFound DiagnosticCode = "template_not_found" // Store has no usable sale type
	DiagnosticProductMissing   DiagnosticCode = "product_missing"    // Product name empty or unknown
	DiagnosticPriceInvalid     DiagnosticCode = "price_invalid"      // Rendered price carries a placeholder
	DiagnosticDatesInvalid     DiagnosticCode = "dates_invalid"      // Date display could not be produced
	DiagnosticCaptionAPIError  DiagnosticCode = "caption_api_error"  // Caption service call failed
)

// DiagnosticStage records which pass produced a diagnostic so each pass can reset its own notes.
type DiagnosticStage string

const (
	StageAnalysis   DiagnosticStage = "analysis"
	StageGeneration DiagnosticStage = "generation"
)

// diagnosticMessages holds the human-readable rendering of each code.
var diagnosticMessages = map[DiagnosticCode]string{
	DiagnosticAnalysisFailed:     "Analysis exception: %s. Review manually.",
	DiagnosticStoreUnrecognized:  "Store '%s' not in predefined list. Defaulting.",
	DiagnosticSaleDatesMissing:   "Sale dates not found. Defaults used.",
	DiagnosticDatesReordered:     "Start/End dates reordered.",
	DiagnosticEndDateInferred:    "End date inferred (1 day after start). Review.",
	DiagnosticStartDateDefaulted: "Start date not found. Using default. Review.",
	DiagnosticStoreNotFound:      "Store details for '%s' not found.",
	DiagnosticTemplateNotFound:   "Caption structure for '%s' not found.",
	DiagnosticProductMissing:     "Product name missing/unknown.",
	DiagnosticPriceInvalid:       "Invalid/missing price.",
	DiagnosticDatesInvalid:       "Invalid date range for caption.",
	DiagnosticCaptionAPIError:    "Caption API error: %s",
}

// Diagnostic is a single tagged review note.
type Diagnostic struct {
	Code   DiagnosticCode  `json:"code"`
	Stage  DiagnosticStage `json:"stage"`
	Detail string          `json:"detail,omitempty"`
}

// Message renders the diagnostic as a human-readable sentence.
func (d Diagnostic) Message() string {
	format, ok := diagnosticMessages[d.Code]
	if !ok {
		if d.Detail != "" {
			return fmt.Sprintf("%s: %s", d.Code, d.Detail)
		}
		return string(d.Code)
	}
	if strings.Contains(format, "%s") {
		return fmt.Sprintf(format, d.Detail)
	}
	return format
}

// Diagnostics is the ordered list of review notes for one item.
type Diagnostics []Diagnostic

// Add appends a diagnostic.
func (ds *Diagnostics) Add(stage DiagnosticStage, code DiagnosticCode, detail string) {
	*ds = append(*ds, Diagnostic{Code: code, Stage: stage, Detail: detail})
}

// Has reports whether any diagnostic carries the given code.
func (ds Diagnostics) Has(code DiagnosticCode) bool {
	for _, d := range ds {
		if d.Code == code {
			return true
		}
	}
	return false
}

// ResetStage drops every diagnostic produced by the given stage.
func (ds *Diagnostics) ResetStage(stage DiagnosticStage) {
	kept := (*ds)[:0]
	for _, d := range *ds {
		if d.Stage != stage {
			kept = append(kept, d)
		}
	}
	*ds = kept
}

// Codes returns the codes in recording order.
func (ds Diagnostics) Codes() []DiagnosticCode {
	codes := make([]DiagnosticCode, 0, len(ds))
	for _, d := range ds {
		codes = append(codes, d.Code)
	}
	return codes
}

// String joins all messages into a single review line.
func (ds Diagnostics) String() string {
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, d.Message())
	}
	return strings.Join(parts, " ")
}
