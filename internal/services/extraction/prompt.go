package extraction

import (
	_ "embed"
	"strings"
)

//go:embed prompts/analysis.txt
var analysisPrompt string

// AnalysisPrompt returns the fixed line-labeled instruction sent with every image.
func AnalysisPrompt() string {
	return strings.TrimSpace(analysisPrompt)
}
