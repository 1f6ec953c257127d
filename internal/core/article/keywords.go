package article

import (
	"math"
	"strings"
)

// AnalyzeKeywords は本文に対する主キーワードの出現率を決定的に計算する。
// LLMは介在しないため、同じ入力には常に同じ結果を返す。
func AnalyzeKeywords(content *ArticleContent, primaryKeyword string, secondaryKeywords []string) KeywordAnalysis {
	return KeywordAnalysis{
		PrimaryKeyword:    primaryKeyword,
		SecondaryKeywords: secondaryKeywords,
		KeywordDensity:    keywordDensity(content.FullText, primaryKeyword, content.WordCount),
	}
}

// keywordDensity は大文字小文字を無視した部分一致の出現回数を総語数で割り、
// パーセント値を小数第2位に丸めて返す
func keywordDensity(text string, keyword string, totalWords int) float64 {
	if totalWords <= 0 || keyword == "" {
		return 0
	}
	count := strings.Count(strings.ToLower(text), strings.ToLower(keyword))
	density := float64(count) / float64(totalWords) * 100
	return math.Round(density*100) / 100
}
