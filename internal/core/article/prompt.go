package article

import (
	"fmt"
	"strings"
)

// LLMの各ステップへ渡すプロンプトを組み立てる。
// 出力フォーマットの指示はパース先の構造体のJSONタグと揃えること。

func buildSERPAnalysisPrompt(topic string, results []SERPResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze these top search results for the query %q:\n\n", topic)
	for _, r := range results {
		fmt.Fprintf(&b, "%d. %s\n   %s\n", r.Rank, r.Title, r.Snippet)
	}
	b.WriteString(`
Based on these results, identify:
1. The primary keyword and 3-5 secondary keywords
2. Common topics every competitor covers
3. Subtopics worth covering
4. Content gaps (topics competitors miss)
5. 5-8 recommended section headings for a comprehensive article

Return JSON with this exact structure:
{
  "primary_keyword": "...",
  "secondary_keywords": ["..."],
  "common_topics": ["..."],
  "subtopics": ["..."],
  "content_gaps": ["..."],
  "recommended_headings": ["..."]
}`)
	return b.String()
}

func buildOutlinePrompt(topic string, insights *SERPInsights, targetWordCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed article outline for the topic %q.\n\n", topic)
	fmt.Fprintf(&b, "Target length: %d words.\n", targetWordCount)
	fmt.Fprintf(&b, "Primary keyword: %s\n", insights.PrimaryKeyword)
	if len(insights.SecondaryKeywords) > 0 {
		fmt.Fprintf(&b, "Secondary keywords: %s\n", strings.Join(insights.SecondaryKeywords, ", "))
	}
	if len(insights.RecommendedHeadings) > 0 {
		fmt.Fprintf(&b, "Recommended headings from competitor analysis: %s\n", strings.Join(insights.RecommendedHeadings, ", "))
	}
	if len(insights.ContentGaps) > 0 {
		fmt.Fprintf(&b, "Content gaps to exploit: %s\n", strings.Join(insights.ContentGaps, ", "))
	}
	b.WriteString(`
Requirements:
- One H1 title containing the primary keyword
- At least 4 H2 sections, each with a word budget summing to the target length
- Optional H3 subsections and 2-4 key points per section

Return JSON with this exact structure:
{
  "h1": "...",
  "sections": [
    {"h2": "...", "h3s": ["..."], "word_count": 300, "key_points": ["..."]}
  ]
}`)
	return b.String()
}

func buildSectionPrompt(h1 string, section OutlineSection, primaryKeyword string, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write the section %q for an article titled %q.\n\n", section.H2, h1)
	fmt.Fprintf(&b, "Target length: about %d words. Language: %s.\n", section.WordCount, language)
	fmt.Fprintf(&b, "Work in the keyword %q naturally, without stuffing.\n", primaryKeyword)
	if len(section.KeyPoints) > 0 {
		fmt.Fprintf(&b, "Cover these points: %s\n", strings.Join(section.KeyPoints, "; "))
	}
	if len(section.H3s) > 0 {
		fmt.Fprintf(&b, "Use these H3 subheadings where they fit: %s\n", strings.Join(section.H3s, ", "))
	}
	b.WriteString("\nWrite engaging prose with short sentences. Return the section body only, no heading, no markdown fences.")
	return b.String()
}

func buildMetadataPrompt(h1 string, primaryKeyword string, preview string) string {
	var b strings.Builder
	b.WriteString("Generate SEO metadata for this article.\n\n")
	fmt.Fprintf(&b, "Title: %s\nPrimary keyword: %s\n\nArticle opening:\n%s\n", h1, primaryKeyword, preview)
	b.WriteString(`
Requirements:
- title_tag: 50-60 characters, contains the primary keyword
- meta_description: 150-160 characters, compelling, contains the primary keyword
- focus_keyword: the primary keyword as used in the article

Return JSON with this exact structure:
{"title_tag": "...", "meta_description": "...", "focus_keyword": "..."}`)
	return b.String()
}

func buildInternalLinksPrompt(topic string, preview string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest 3-5 internal linking opportunities for an article about %q.\n\n", topic)
	fmt.Fprintf(&b, "Article opening:\n%s\n", preview)
	b.WriteString(`
For each link give the anchor text, a plausible target page slug on the same site, and the sentence context where it belongs.

Return JSON with this exact structure:
{"links": [{"anchor_text": "...", "suggested_target": "/...", "context": "..."}]}`)
	return b.String()
}

func buildExternalReferencesPrompt(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest 2-4 authoritative external sources to cite in an article about %q.\n", topic)
	b.WriteString(`
Prefer research institutions, industry reports, and official documentation.

Return JSON with this exact structure:
{"references": [{"source_name": "...", "url": "https://...", "context": "...", "placement_suggestion": "..."}]}`)
	return b.String()
}

// previewText は本文の先頭 n 文字をプロンプト用に切り出す
func previewText(fullText string, n int) string {
	runes := []rune(fullText)
	if len(runes) <= n {
		return fullText
	}
	return string(runes[:n])
}
