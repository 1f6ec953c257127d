package llmmock

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinford/seo-writer/internal/core/article"
)

// 各プロンプト種別への定型応答が、パイプラインのパース先構造体へ
// そのままデコードできることを確認する
func TestClient_GenerateText(t *testing.T) {
	client := NewClient()
	ctx := context.Background()

	t.Run("競合分析", func(t *testing.T) {
		raw, err := client.GenerateText(ctx, "Analyze these top search results for the query \"x\":", 0.7)
		require.NoError(t, err)

		var insights article.SERPInsights
		require.NoError(t, json.Unmarshal([]byte(raw), &insights))
		assert.NotEmpty(t, insights.PrimaryKeyword)
		assert.NotEmpty(t, insights.RecommendedHeadings)
	})

	t.Run("アウトライン", func(t *testing.T) {
		raw, err := client.GenerateText(ctx, "Create a detailed article outline for the topic \"x\".", 0.7)
		require.NoError(t, err)

		var outline article.Outline
		require.NoError(t, json.Unmarshal([]byte(raw), &outline))
		assert.NotEmpty(t, outline.H1)
		assert.GreaterOrEqual(t, len(outline.Sections), 4)
		for _, sec := range outline.Sections {
			assert.NotEmpty(t, sec.H2)
			assert.Greater(t, sec.WordCount, 0)
		}
	})

	t.Run("メタ情報", func(t *testing.T) {
		raw, err := client.GenerateText(ctx, "Generate SEO metadata for this article.", 0.7)
		require.NoError(t, err)

		var metadata article.SEOMetadata
		require.NoError(t, json.Unmarshal([]byte(raw), &metadata))
		assert.NotEmpty(t, metadata.TitleTag)
		assert.NotEmpty(t, metadata.MetaDescription)
		assert.NotEmpty(t, metadata.FocusKeyword)
	})

	t.Run("内部リンク", func(t *testing.T) {
		raw, err := client.GenerateText(ctx, "Suggest 3-5 internal linking opportunities for an article.", 0.7)
		require.NoError(t, err)

		var payload struct {
			Links []article.InternalLink `json:"links"`
		}
		require.NoError(t, json.Unmarshal([]byte(raw), &payload))
		assert.GreaterOrEqual(t, len(payload.Links), 3)
		assert.LessOrEqual(t, len(payload.Links), 5)
	})

	t.Run("外部参照", func(t *testing.T) {
		raw, err := client.GenerateText(ctx, "Suggest 2-4 authoritative external sources to cite.", 0.7)
		require.NoError(t, err)

		var payload struct {
			References []article.ExternalReference `json:"references"`
		}
		require.NoError(t, json.Unmarshal([]byte(raw), &payload))
		assert.GreaterOrEqual(t, len(payload.References), 2)
		assert.LessOrEqual(t, len(payload.References), 4)
	})

	t.Run("その他のプロンプトはセクション本文", func(t *testing.T) {
		raw, err := client.GenerateText(ctx, "Write the section \"Intro\" for an article titled \"x\".", 0.8)
		require.NoError(t, err)
		assert.NotEmpty(t, raw)
		assert.False(t, json.Valid([]byte(raw)), "本文はJSONではなくプレーンテキスト")
	})
}
