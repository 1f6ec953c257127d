package article

import (
	"encoding/json"
	"time"
)

// JobStatus は記事生成ジョブのライフサイクル状態を表す
type JobStatus string

const (
	StatusPending   JobStatus = "pending"
	StatusRunning   JobStatus = "running"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
)

// IsTerminal は終端状態(完了または失敗)かどうかを返す
func (s JobStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// パイプライン途中経過として保存されるチェックポイント名
const (
	CheckpointSERPData    = "serp_data"
	CheckpointOutlineData = "outline_data"
)

// Job は1件の記事生成リクエストとその進行状況を表す
type Job struct {
	ID              string                     `json:"job_id"`
	Topic           string                     `json:"topic"`
	TargetWordCount int                        `json:"target_word_count"`
	Language        string                     `json:"language"`
	Status          JobStatus                  `json:"status"`
	CreatedAt       time.Time                  `json:"created_at"`
	CompletedAt     *time.Time                 `json:"completed_at,omitempty"`
	Checkpoints     map[string]json.RawMessage `json:"checkpoints,omitempty"`
	Result          *ArticleOutput             `json:"result,omitempty"`
	Error           string                     `json:"error,omitempty"`
}

// SERPResult は検索結果の1件を表す
type SERPResult struct {
	Rank    int    `json:"rank"`
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// SERPInsights は上位の検索結果から抽出した競合コンテンツの傾向
type SERPInsights struct {
	PrimaryKeyword      string   `json:"primary_keyword"`
	SecondaryKeywords   []string `json:"secondary_keywords"`
	CommonTopics        []string `json:"common_topics"`
	Subtopics           []string `json:"subtopics"`
	ContentGaps         []string `json:"content_gaps"`
	RecommendedHeadings []string `json:"recommended_headings"`
}

// OutlineSection は記事アウトラインの1セクション
type OutlineSection struct {
	H2        string   `json:"h2"`
	H3s       []string `json:"h3s"`
	WordCount int      `json:"word_count"`
	KeyPoints []string `json:"key_points"`
}

// Outline は記事全体の構成案
type Outline struct {
	H1       string           `json:"h1"`
	Sections []OutlineSection `json:"sections"`
}

// ArticleSection は生成済み記事の1セクション
type ArticleSection struct {
	Heading   string `json:"heading"`
	Level     int    `json:"heading_level"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
}

// ArticleContent は生成済み記事の本文
type ArticleContent struct {
	H1        string           `json:"h1"`
	Sections  []ArticleSection `json:"sections"`
	FullText  string           `json:"full_text"`
	WordCount int              `json:"word_count"`
}

// SEOMetadata は検索結果ページ向けのメタ情報
type SEOMetadata struct {
	TitleTag        string `json:"title_tag"`
	MetaDescription string `json:"meta_description"`
	FocusKeyword    string `json:"focus_keyword"`
}

// InternalLink は記事内に挿入する内部リンクの提案
type InternalLink struct {
	AnchorText      string `json:"anchor_text"`
	SuggestedTarget string `json:"suggested_target"`
	Context         string `json:"context"`
}

// ExternalReference は記事が引用すべき外部ソースの提案
type ExternalReference struct {
	SourceName          string `json:"source_name"`
	URL                 string `json:"url"`
	Context             string `json:"context"`
	PlacementSuggestion string `json:"placement_suggestion"`
}

// KeywordAnalysis はキーワード出現率の決定的な計測結果
type KeywordAnalysis struct {
	PrimaryKeyword    string   `json:"primary_keyword"`
	SecondaryKeywords []string `json:"secondary_keywords"`
	KeywordDensity    float64  `json:"keyword_density"`
}

// QualityReport はルールベース品質評価の結果
type QualityReport struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
	Passed bool     `json:"passed"`
}

// ArticleOutput はパイプライン完了時にジョブへ保存される成果物。
// SERPAnalysis には生成の根拠となった検索結果を取得順のまま保持する。
type ArticleOutput struct {
	Article            ArticleContent      `json:"article"`
	SEOMetadata        SEOMetadata         `json:"seo_metadata"`
	KeywordAnalysis    KeywordAnalysis     `json:"keyword_analysis"`
	InternalLinks      []InternalLink      `json:"internal_links"`
	ExternalReferences []ExternalReference `json:"external_references"`
	SERPAnalysis       []SERPResult        `json:"serp_analysis"`
	SERPInsights       SERPInsights        `json:"serp_insights"`
	QualityReport      QualityReport       `json:"quality_report"`
}
