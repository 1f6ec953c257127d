package article

import (
	"context"
	"fmt"
)

// SERPAnalyzer は検索結果から競合コンテンツの傾向を抽出する
type SERPAnalyzer struct {
	llm TextGenerator
}

func NewSERPAnalyzer(llm TextGenerator) *SERPAnalyzer {
	return &SERPAnalyzer{llm: llm}
}

// Analyze は検索結果群をLLMに要約させ、キーワードと見出し候補を得る
func (a *SERPAnalyzer) Analyze(ctx context.Context, topic string, results []SERPResult) (*SERPInsights, error) {
	var insights SERPInsights
	if err := generateStructured(ctx, a.llm, buildSERPAnalysisPrompt(topic, results), &insights); err != nil {
		return nil, fmt.Errorf("failed to analyze search results: %w", err)
	}

	// 主キーワードは後段の全ステップが参照するため必ず埋める
	if insights.PrimaryKeyword == "" {
		insights.PrimaryKeyword = topic
	}
	return &insights, nil
}
