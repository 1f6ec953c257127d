package article

import (
	"context"
	"fmt"
)

// OutlineGenerator は競合分析を踏まえた記事アウトラインを生成する
type OutlineGenerator struct {
	llm TextGenerator
}

func NewOutlineGenerator(llm TextGenerator) *OutlineGenerator {
	return &OutlineGenerator{llm: llm}
}

// Generate はトピックと競合分析からアウトラインを組み立てる
func (g *OutlineGenerator) Generate(ctx context.Context, topic string, insights *SERPInsights, targetWordCount int) (*Outline, error) {
	var outline Outline
	if err := generateStructured(ctx, g.llm, buildOutlinePrompt(topic, insights, targetWordCount), &outline); err != nil {
		return nil, fmt.Errorf("failed to generate outline: %w", err)
	}

	if outline.H1 == "" {
		outline.H1 = topic
	}
	if len(outline.Sections) == 0 {
		return nil, fmt.Errorf("%w: outline has no sections", ErrMalformedOutput)
	}
	return &outline, nil
}
