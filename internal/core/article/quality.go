package article

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// PassingScore は品質チェック合格とみなす下限スコア
const PassingScore = 70

// 各評価基準の配点。合計は100。
const (
	pointsTitleLength    = 10
	pointsMetaLength     = 10
	pointsKeywordInH1    = 15
	pointsKeywordEarly   = 15
	pointsWordCount      = 10
	pointsSectionCount   = 15
	pointsKeywordDensity = 10
	pointsReadability    = 15
)

const (
	minTitleTagChars = 50
	maxTitleTagChars = 60
	minMetaChars     = 150
	maxMetaChars     = 160

	wordCountTolerance = 0.10
	minSectionCount    = 4

	minDensityPct = 1.0
	maxDensityPct = 2.5

	minWordsPerSentence = 15.0
	maxWordsPerSentence = 20.0

	earlyKeywordWindow = 100
)

// ScoreQuality は生成済み記事をルールベースで採点する。
// LLMは一切使わない決定的な評価で、同じ入力には常に同じレポートを返す。
func ScoreQuality(content *ArticleContent, metadata *SEOMetadata, targetWordCount int) QualityReport {
	score := 0
	issues := []string{}

	titleLen := utf8.RuneCountInString(metadata.TitleTag)
	if titleLen >= minTitleTagChars && titleLen <= maxTitleTagChars {
		score += pointsTitleLength
	} else {
		issues = append(issues, fmt.Sprintf("Title tag should be %d-%d characters (current: %d)", minTitleTagChars, maxTitleTagChars, titleLen))
	}

	metaLen := utf8.RuneCountInString(metadata.MetaDescription)
	if metaLen >= minMetaChars && metaLen <= maxMetaChars {
		score += pointsMetaLength
	} else {
		issues = append(issues, fmt.Sprintf("Meta description should be %d-%d characters (current: %d)", minMetaChars, maxMetaChars, metaLen))
	}

	keyword := strings.ToLower(metadata.FocusKeyword)
	if keyword != "" && strings.Contains(strings.ToLower(content.H1), keyword) {
		score += pointsKeywordInH1
	} else {
		issues = append(issues, "Focus keyword missing from H1")
	}

	if keyword != "" && strings.Contains(firstWords(content.FullText, earlyKeywordWindow), keyword) {
		score += pointsKeywordEarly
	} else {
		issues = append(issues, fmt.Sprintf("Focus keyword missing from first %d words", earlyKeywordWindow))
	}

	diff := content.WordCount - targetWordCount
	if diff < 0 {
		diff = -diff
	}
	if float64(diff) <= wordCountTolerance*float64(targetWordCount) {
		score += pointsWordCount
	} else {
		issues = append(issues, fmt.Sprintf("Word count %d deviates more than %.0f%% from target %d", content.WordCount, wordCountTolerance*100, targetWordCount))
	}

	h2Count := 0
	for _, sec := range content.Sections {
		if sec.Level == 2 {
			h2Count++
		}
	}
	if h2Count >= minSectionCount {
		score += pointsSectionCount
	} else {
		issues = append(issues, fmt.Sprintf("Article should have at least %d sections (current: %d)", minSectionCount, h2Count))
	}

	density := keywordDensity(content.FullText, metadata.FocusKeyword, content.WordCount)
	if density >= minDensityPct && density <= maxDensityPct {
		score += pointsKeywordDensity
	} else {
		issues = append(issues, fmt.Sprintf("Keyword density %.2f%% outside ideal range %.1f-%.1f%%", density, minDensityPct, maxDensityPct))
	}

	// 文が1つも検出できない場合は可読性の基準そのものを適用しない
	sentences := countSentences(content.FullText)
	if sentences > 0 {
		avg := float64(content.WordCount) / float64(sentences)
		if avg >= minWordsPerSentence && avg <= maxWordsPerSentence {
			score += pointsReadability
		} else {
			issues = append(issues, fmt.Sprintf("Average sentence length %.1f words outside ideal range %.0f-%.0f", avg, minWordsPerSentence, maxWordsPerSentence))
		}
	}

	return QualityReport{
		Score:  score,
		Issues: issues,
		Passed: score >= PassingScore,
	}
}

// firstWords は空白区切りの先頭 n 語を小文字連結して返す
func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.ToLower(strings.Join(words, " "))
}

func countSentences(text string) int {
	return strings.Count(text, ".") + strings.Count(text, "!") + strings.Count(text, "?")
}
