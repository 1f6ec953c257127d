package article

import (
	"context"
	"fmt"
	"strings"
)

// セクション本文は構造化出力より高い温度で生成する
const contentTemperature = 0.8

// ContentGenerator はアウトラインに沿ってセクションごとに本文を生成する
type ContentGenerator struct {
	llm TextGenerator
}

func NewContentGenerator(llm TextGenerator) *ContentGenerator {
	return &ContentGenerator{llm: llm}
}

// Generate はアウトラインの各セクションを順に執筆し、記事全体を組み立てる。
// full_text はH1と各H2見出しを含むMarkdownで、word_count は本文のみの合計語数。
func (g *ContentGenerator) Generate(ctx context.Context, outline *Outline, primaryKeyword string, language string) (*ArticleContent, error) {
	var fullText strings.Builder
	fmt.Fprintf(&fullText, "# %s", outline.H1)

	sections := make([]ArticleSection, 0, len(outline.Sections))
	totalWords := 0
	for _, sec := range outline.Sections {
		body, err := g.llm.GenerateText(ctx, buildSectionPrompt(outline.H1, sec, primaryKeyword, language), contentTemperature)
		if err != nil {
			return nil, fmt.Errorf("failed to write section %q: %w", sec.H2, err)
		}
		body = strings.TrimSpace(stripCodeFence(body))
		if body == "" {
			return nil, fmt.Errorf("%w: empty body for section %q", ErrMalformedOutput, sec.H2)
		}

		words := len(strings.Fields(body))
		sections = append(sections, ArticleSection{
			Heading:   sec.H2,
			Level:     2,
			Content:   body,
			WordCount: words,
		})
		totalWords += words

		fmt.Fprintf(&fullText, "\n\n## %s\n\n%s", sec.H2, body)
	}

	return &ArticleContent{
		H1:        outline.H1,
		Sections:  sections,
		FullText:  fullText.String(),
		WordCount: totalWords,
	}, nil
}
