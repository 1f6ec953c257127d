package article

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeKeywords(t *testing.T) {
	t.Run("大文字小文字を無視して出現回数を数える", func(t *testing.T) {
		content := &ArticleContent{
			FullText:  "Productivity Tools matter. We compare productivity tools here. PRODUCTIVITY TOOLS win.",
			WordCount: 100,
		}

		analysis := AnalyzeKeywords(content, "productivity tools", []string{"task management"})

		assert.Equal(t, "productivity tools", analysis.PrimaryKeyword)
		assert.Equal(t, []string{"task management"}, analysis.SecondaryKeywords)
		assert.Equal(t, 3.0, analysis.KeywordDensity)
	})

	t.Run("小数第2位に丸める", func(t *testing.T) {
		content := &ArticleContent{
			FullText:  "go is fun",
			WordCount: 3,
		}

		analysis := AnalyzeKeywords(content, "go", nil)

		// 1/3*100 = 33.333... → 33.33
		assert.Equal(t, 33.33, analysis.KeywordDensity)
	})

	t.Run("同じ入力には常に同じ値を返す", func(t *testing.T) {
		content := &ArticleContent{
			FullText:  strings.Repeat("home coffee brewing is a craft. ", 50),
			WordCount: 300,
		}

		first := AnalyzeKeywords(content, "home coffee brewing", nil)
		second := AnalyzeKeywords(content, "home coffee brewing", nil)
		assert.Equal(t, first, second)
	})

	t.Run("総語数ゼロまたはキーワード空では出現率ゼロ", func(t *testing.T) {
		empty := &ArticleContent{FullText: "", WordCount: 0}
		assert.Zero(t, AnalyzeKeywords(empty, "anything", nil).KeywordDensity)

		content := &ArticleContent{FullText: "some text here", WordCount: 3}
		assert.Zero(t, AnalyzeKeywords(content, "", nil).KeywordDensity)
	})
}
