package article

import (
	"context"
	"fmt"
)

const (
	metadataPreviewChars = 1500

	maxInternalLinks      = 5
	maxExternalReferences = 4
)

// MetadataGenerator はメタ情報・内部リンク・外部参照の各提案を生成する
type MetadataGenerator struct {
	llm TextGenerator
}

func NewMetadataGenerator(llm TextGenerator) *MetadataGenerator {
	return &MetadataGenerator{llm: llm}
}

// GenerateMetadata はタイトルタグ・メタディスクリプション・フォーカスキーワードを生成する
func (g *MetadataGenerator) GenerateMetadata(ctx context.Context, content *ArticleContent, primaryKeyword string) (*SEOMetadata, error) {
	prompt := buildMetadataPrompt(content.H1, primaryKeyword, previewText(content.FullText, metadataPreviewChars))

	var metadata SEOMetadata
	if err := generateStructured(ctx, g.llm, prompt, &metadata); err != nil {
		return nil, fmt.Errorf("failed to generate seo metadata: %w", err)
	}

	if metadata.FocusKeyword == "" {
		metadata.FocusKeyword = primaryKeyword
	}
	return &metadata, nil
}

// GenerateInternalLinks は記事内に挿入する内部リンク候補を3-5件生成する
func (g *MetadataGenerator) GenerateInternalLinks(ctx context.Context, topic string, content *ArticleContent) ([]InternalLink, error) {
	prompt := buildInternalLinksPrompt(topic, previewText(content.FullText, metadataPreviewChars))

	var payload struct {
		Links []InternalLink `json:"links"`
	}
	if err := generateStructured(ctx, g.llm, prompt, &payload); err != nil {
		return nil, fmt.Errorf("failed to generate internal links: %w", err)
	}
	if len(payload.Links) == 0 {
		return nil, fmt.Errorf("%w: no internal links returned", ErrMalformedOutput)
	}
	if len(payload.Links) > maxInternalLinks {
		payload.Links = payload.Links[:maxInternalLinks]
	}
	return payload.Links, nil
}

// GenerateExternalReferences は引用すべき外部ソース候補を2-4件生成する
func (g *MetadataGenerator) GenerateExternalReferences(ctx context.Context, topic string) ([]ExternalReference, error) {
	var payload struct {
		References []ExternalReference `json:"references"`
	}
	if err := generateStructured(ctx, g.llm, buildExternalReferencesPrompt(topic), &payload); err != nil {
		return nil, fmt.Errorf("failed to generate external references: %w", err)
	}
	if len(payload.References) == 0 {
		return nil, fmt.Errorf("%w: no external references returned", ErrMalformedOutput)
	}
	if len(payload.References) > maxExternalReferences {
		payload.References = payload.References[:maxExternalReferences]
	}
	return payload.References, nil
}
