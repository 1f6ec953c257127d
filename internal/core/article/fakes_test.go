package article

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// fakeJobStore はテスト用のインメモリJobStore実装
type fakeJobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[string]*Job)}
}

func (s *fakeJobStore) Create(_ context.Context, params CreateJobParams) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[params.ID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateJob, params.ID)
	}
	job := &Job{
		ID:              params.ID,
		Topic:           params.Topic,
		TargetWordCount: params.TargetWordCount,
		Language:        params.Language,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC(),
		Checkpoints:     make(map[string]json.RawMessage),
	}
	s.jobs[params.ID] = job
	cp := *job
	return &cp, nil
}

func (s *fakeJobStore) Get(_ context.Context, id string) (*Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	cp := *job
	return &cp, nil
}

func (s *fakeJobStore) SetStatus(_ context.Context, id string, status JobStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	job.Status = status
	return nil
}

func (s *fakeJobStore) SaveCheckpoint(_ context.Context, id string, name string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	job.Checkpoints[name] = payload
	return nil
}

func (s *fakeJobStore) Complete(_ context.Context, id string, result *ArticleOutput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if job.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, id)
	}
	now := time.Now().UTC()
	job.Status = StatusCompleted
	job.CompletedAt = &now
	job.Result = result
	return nil
}

func (s *fakeJobStore) Fail(_ context.Context, id string, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if job.Status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrInvalidTransition, id)
	}
	now := time.Now().UTC()
	job.Status = StatusFailed
	job.CompletedAt = &now
	job.Error = message
	return nil
}

// fakeSERP は固定の検索結果を返す
type fakeSERP struct {
	err error
}

func (f *fakeSERP) Search(_ context.Context, query string, count int) ([]SERPResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	results := make([]SERPResult, 0, count)
	for i := 0; i < count; i++ {
		results = append(results, SERPResult{
			Rank:    i + 1,
			URL:     fmt.Sprintf("https://example.com/%s/%d", query, i+1),
			Title:   fmt.Sprintf("Result %d for %s", i+1, query),
			Snippet: fmt.Sprintf("Snippet %d about %s", i+1, query),
		})
	}
	return results, nil
}

// pipelineLLM はプロンプト種別ごとの定型応答でパイプライン全体を通すテスト用LLM
type pipelineLLM struct {
	mu    sync.Mutex
	delay time.Duration
	calls int
}

func (f *pipelineLLM) GenerateText(ctx context.Context, prompt string, _ float64) (string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.delay):
		}
	}

	switch {
	case strings.Contains(prompt, "Analyze these top search results"):
		return `{"primary_keyword":"home coffee brewing","secondary_keywords":["pour over","french press"],"common_topics":["equipment"],"subtopics":["grind size"],"content_gaps":["water chemistry"],"recommended_headings":["Equipment","Technique"]}`, nil
	case strings.Contains(prompt, "Create a detailed article outline"):
		return `{"h1":"Home Coffee Brewing: A Field Guide","sections":[
			{"h2":"Choosing Your Equipment","h3s":[],"word_count":300,"key_points":["grinders","kettles"]},
			{"h2":"Dialing In Grind Size","h3s":[],"word_count":300,"key_points":["burr vs blade"]},
			{"h2":"Water and Temperature","h3s":[],"word_count":300,"key_points":["ratios"]},
			{"h2":"Common Brewing Mistakes","h3s":[],"word_count":300,"key_points":["over extraction"]}]}`, nil
	case strings.Contains(prompt, "Generate SEO metadata"):
		return `{"title_tag":"Home Coffee Brewing Guide: Gear, Grind and Technique","meta_description":"Learn home coffee brewing from the ground up. This guide covers equipment, grind size, water temperature, and the mistakes that ruin a good cup of coffee.","focus_keyword":"home coffee brewing"}`, nil
	case strings.Contains(prompt, "internal linking opportunities"):
		return `{"links":[
			{"anchor_text":"grinder reviews","suggested_target":"/blog/grinder-reviews","context":"See our grinder reviews."},
			{"anchor_text":"pour over tutorial","suggested_target":"/blog/pour-over-tutorial","context":"Follow the pour over tutorial."},
			{"anchor_text":"water quality guide","suggested_target":"/blog/water-quality","context":"Read the water quality guide."}]}`, nil
	case strings.Contains(prompt, "authoritative external sources"):
		return `{"references":[
			{"source_name":"Specialty Coffee Association","url":"https://sca.coffee","context":"Brewing standards","placement_suggestion":"Technique section"},
			{"source_name":"Coffee Research Institute","url":"https://coffeeresearch.org","context":"Extraction science","placement_suggestion":"Water section"}]}`, nil
	default:
		return "Home coffee brewing rewards patience. Start with fresh beans and a consistent grind. Measure your water and keep notes on every brew. Small changes in temperature shift the taste noticeably. Adjust one variable at a time until the cup tastes right.", nil
	}
}

// capturePublisher は配信されたイベントを記録する
type capturePublisher struct {
	mu     sync.Mutex
	events []JobEvent
}

func (p *capturePublisher) PublishJobEvent(_ context.Context, event JobEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) published() []JobEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]JobEvent(nil), p.events...)
}
