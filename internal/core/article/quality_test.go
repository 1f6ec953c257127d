package article

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 全基準を満たすベースライン記事:
//   - タイトル54文字 / メタ155文字
//   - キーワード出現20回 / 総語数1500 → 出現率1.33%
//   - 文数85 → 平均文長 1500/85 ≈ 17.6語
func passingContent() *ArticleContent {
	fullText := "# Home Productivity Tools Guide\n\n" +
		strings.Repeat("productivity tools ", 20) +
		strings.Repeat("word. ", 85)
	return &ArticleContent{
		H1: "The Complete Guide to Productivity Tools",
		Sections: []ArticleSection{
			{Heading: "What Are Productivity Tools", Level: 2},
			{Heading: "How to Choose", Level: 2},
			{Heading: "Top Picks", Level: 2},
			{Heading: "Common Mistakes", Level: 2},
		},
		FullText:  fullText,
		WordCount: 1500,
	}
}

func passingMetadata() *SEOMetadata {
	return &SEOMetadata{
		TitleTag:        "Best Productivity Tools for Teams: Complete 2025 Guide", // 54文字
		MetaDescription: strings.Repeat("m", 155),
		FocusKeyword:    "productivity tools",
	}
}

func TestScoreQuality(t *testing.T) {
	t.Run("全基準を満たす記事は満点で合格", func(t *testing.T) {
		report := ScoreQuality(passingContent(), passingMetadata(), 1500)

		assert.Equal(t, 100, report.Score)
		assert.Empty(t, report.Issues)
		assert.True(t, report.Passed)
	})

	t.Run("同じ入力には常に同じレポートを返す", func(t *testing.T) {
		first := ScoreQuality(passingContent(), passingMetadata(), 1500)
		second := ScoreQuality(passingContent(), passingMetadata(), 1500)
		assert.Equal(t, first, second)
	})

	tests := []struct {
		name      string
		mutate    func(content *ArticleContent, metadata *SEOMetadata)
		target    int
		wantScore int
		wantIssue string
	}{
		{
			name: "66文字のタイトルはタイトル基準のみ落とす",
			mutate: func(_ *ArticleContent, m *SEOMetadata) {
				m.TitleTag = strings.Repeat("x", 66)
			},
			target:    1500,
			wantScore: 90,
			wantIssue: "Title tag",
		},
		{
			name: "短すぎるメタディスクリプション",
			mutate: func(_ *ArticleContent, m *SEOMetadata) {
				m.MetaDescription = strings.Repeat("m", 140)
			},
			target:    1500,
			wantScore: 90,
			wantIssue: "Meta description",
		},
		{
			name: "H1にキーワードが含まれない",
			mutate: func(c *ArticleContent, _ *SEOMetadata) {
				c.H1 = "A Guide to Getting Things Done"
			},
			target:    1500,
			wantScore: 85,
			wantIssue: "missing from H1",
		},
		{
			name: "冒頭100語にキーワードが現れない",
			mutate: func(c *ArticleContent, _ *SEOMetadata) {
				// キーワードを101語目以降へ追いやる(出現率と文数は維持)
				c.FullText = strings.Repeat("word ", 100) +
					strings.Repeat("productivity tools ", 20) +
					strings.Repeat("word. ", 85)
			},
			target:    1500,
			wantScore: 85,
			wantIssue: "first 100 words",
		},
		{
			name: "目標1500語に対し実測1744語は許容幅を超える",
			mutate: func(c *ArticleContent, _ *SEOMetadata) {
				// 語数以外の基準(出現率・平均文長)は範囲内に保つ
				c.WordCount = 1744
				c.FullText = "# Home Productivity Tools Guide\n\n" +
					strings.Repeat("productivity tools ", 20) +
					strings.Repeat("word. ", 90)
			},
			target:    1500,
			wantScore: 90,
			wantIssue: "deviates",
		},
		{
			name: "セクションが3つでは不足",
			mutate: func(c *ArticleContent, _ *SEOMetadata) {
				c.Sections = c.Sections[:3]
			},
			target:    1500,
			wantScore: 85,
			wantIssue: "at least 4 sections",
		},
		{
			name: "キーワード出現率が高すぎる",
			mutate: func(c *ArticleContent, _ *SEOMetadata) {
				c.FullText = strings.Repeat("productivity tools ", 60) +
					strings.Repeat("word. ", 85)
			},
			target:    1500,
			wantScore: 90,
			wantIssue: "Keyword density",
		},
		{
			name: "平均文長が長すぎる",
			mutate: func(c *ArticleContent, _ *SEOMetadata) {
				c.FullText = strings.Repeat("productivity tools ", 20) +
					strings.Repeat("word. ", 40)
			},
			target:    1500,
			wantScore: 85,
			wantIssue: "sentence length",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := passingContent()
			metadata := passingMetadata()
			tt.mutate(content, metadata)

			report := ScoreQuality(content, metadata, tt.target)

			assert.Equal(t, tt.wantScore, report.Score)
			assert.True(t, report.Passed, "単一基準の不合格では70点を下回らない")
			if assert.Len(t, report.Issues, 1) {
				assert.Contains(t, report.Issues[0], tt.wantIssue)
			}
		})
	}

	t.Run("文が検出できない場合は可読性基準を適用しない", func(t *testing.T) {
		content := passingContent()
		content.FullText = strings.Repeat("productivity tools ", 20) + strings.Repeat("word ", 85)

		report := ScoreQuality(content, passingMetadata(), 1500)

		assert.Equal(t, 85, report.Score)
		assert.Empty(t, report.Issues)
		assert.True(t, report.Passed)
	})

	t.Run("複数基準の不合格で70点を下回ると不合格", func(t *testing.T) {
		content := passingContent()
		metadata := passingMetadata()
		metadata.TitleTag = "short"
		metadata.MetaDescription = "too short"
		content.H1 = "Unrelated Heading"
		content.Sections = content.Sections[:2]

		report := ScoreQuality(content, metadata, 1500)

		assert.Equal(t, 50, report.Score)
		assert.False(t, report.Passed)
		assert.Len(t, report.Issues, 4)
	})
}
