// Package llmmock はLLM APIを呼ばずに定型応答を返すテキスト生成クライアントを提供する。
// APIキーなしでパイプライン全体を動かすための開発・テスト用実装。
package llmmock

import (
	"context"
	"strings"

	"github.com/jinford/seo-writer/internal/core/article"
)

// Client はプロンプトの種別を文字列マッチで判定し、対応する定型応答を返す
type Client struct{}

func NewClient() *Client {
	return &Client{}
}

// GenerateText はプロンプトに応じた定型応答を返す。外部APIは呼ばない。
func (c *Client) GenerateText(_ context.Context, prompt string, _ float64) (string, error) {
	switch {
	case strings.Contains(prompt, "Analyze these top search results"):
		return mockInsights, nil
	case strings.Contains(prompt, "Create a detailed article outline"):
		return mockOutline, nil
	case strings.Contains(prompt, "Generate SEO metadata"):
		return mockMetadata, nil
	case strings.Contains(prompt, "internal linking opportunities"):
		return mockInternalLinks, nil
	case strings.Contains(prompt, "authoritative external sources"):
		return mockExternalReferences, nil
	default:
		return mockSectionBody, nil
	}
}

const mockInsights = `{
  "primary_keyword": "productivity tools",
  "secondary_keywords": ["team collaboration", "task management", "workflow automation"],
  "common_topics": ["tool comparisons", "pricing", "integrations"],
  "subtopics": ["remote work", "automation recipes"],
  "content_gaps": ["migration guides", "security considerations"],
  "recommended_headings": ["What Are Productivity Tools", "How to Choose", "Top Picks", "Common Mistakes", "Getting Started"]
}`

const mockOutline = `{
  "h1": "The Complete Guide to Productivity Tools",
  "sections": [
    {"h2": "What Are Productivity Tools", "h3s": ["Core categories"], "word_count": 350, "key_points": ["definition", "categories"]},
    {"h2": "How to Choose the Right Tool", "h3s": ["Budget", "Team size"], "word_count": 400, "key_points": ["criteria", "tradeoffs"]},
    {"h2": "Top Productivity Tools Compared", "h3s": [], "word_count": 400, "key_points": ["comparison", "pricing"]},
    {"h2": "Common Mistakes to Avoid", "h3s": [], "word_count": 350, "key_points": ["overbuying", "poor onboarding"]}
  ]
}`

const mockMetadata = `{
  "title_tag": "Best Productivity Tools for Teams: Complete 2025 Guide",
  "meta_description": "Discover the best productivity tools for your team. Our complete guide compares features, pricing, and integrations so you can pick the right productivity stack.",
  "focus_keyword": "productivity tools"
}`

const mockInternalLinks = `{
  "links": [
    {"anchor_text": "task management guide", "suggested_target": "/blog/task-management-guide", "context": "For a deeper look at organizing work, see our task management guide."},
    {"anchor_text": "remote collaboration tips", "suggested_target": "/blog/remote-collaboration-tips", "context": "Distributed teams benefit from these remote collaboration tips."},
    {"anchor_text": "workflow automation basics", "suggested_target": "/blog/workflow-automation-basics", "context": "Automation beginners should start with workflow automation basics."},
    {"anchor_text": "software pricing comparison", "suggested_target": "/blog/software-pricing-comparison", "context": "Budget-conscious buyers can consult our software pricing comparison."}
  ]
}`

const mockExternalReferences = `{
  "references": [
    {"source_name": "Harvard Business Review", "url": "https://hbr.org/topic/productivity", "context": "Research on workplace productivity trends", "placement_suggestion": "Introduction section"},
    {"source_name": "Gartner", "url": "https://www.gartner.com/en/research", "context": "Market analysis of collaboration software", "placement_suggestion": "Tool comparison section"},
    {"source_name": "McKinsey & Company", "url": "https://www.mckinsey.com/capabilities/people-and-organizational-performance", "context": "Study on automation and knowledge work", "placement_suggestion": "Common mistakes section"}
  ]
}`

const mockSectionBody = `Productivity tools have become essential for modern teams. They help people plan work and track progress in one place. The right setup removes friction from everyday tasks. Teams that adopt productivity tools report faster delivery and fewer dropped handoffs. Start by mapping how work actually flows through your team today. Then look for the bottlenecks that cost the most time each week. A good tool fits your existing process instead of forcing a new one. Keep the rollout small at first and expand once habits form. Measure adoption honestly and retire anything your team stops using. Over time a lean, well-chosen stack compounds into significant gains. The goal is not more software but less wasted effort across the whole team.`

// インターフェース実装の確認
var _ article.TextGenerator = (*Client)(nil)
