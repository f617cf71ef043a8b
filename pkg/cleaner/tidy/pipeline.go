package tidy

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/tidycsv/pkg/cleaner"
	"github.com/jmylchreest/tidycsv/pkg/table"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCache memoizes cleaned values in an LRU of size entries.
// Output is identical with or without the cache.
func WithCache(size int) Option {
	return func(p *Pipeline) {
		p.cacheSize = size
		p.cached = true
	}
}

// Pipeline applies the stages enabled by a Config to single cell values.
//
// Stages run in a fixed order: entity decoding, tag stripping, URL
// removal, email removal, whitespace normalization. Empty input is
// returned as "" without running any stage. A Pipeline is safe for
// concurrent use.
type Pipeline struct {
	config    Config
	stages    []string
	run       cleaner.Cleaner
	memo      *cleaner.Memo
	cached    bool
	cacheSize int
}

// New builds the pipeline for cfg.
func New(cfg Config, opts ...Option) *Pipeline {
	p := &Pipeline{config: cfg}
	for _, opt := range opts {
		opt(p)
	}

	var stages []cleaner.Cleaner
	if cfg.DecodeEntities {
		stages = append(stages, cleaner.NewEntityDecoder())
	}
	if cfg.StripTags {
		stages = append(stages, cleaner.NewTagStripper(cfg.PreserveFormatting))
	}
	if cfg.RemoveURLs {
		stages = append(stages, cleaner.NewURLScrubber())
	}
	if cfg.RemoveEmails {
		stages = append(stages, cleaner.NewEmailScrubber())
	}
	if cfg.NormalizeWhitespace {
		stages = append(stages, cleaner.NewWhitespaceNormalizer())
	}

	for _, s := range stages {
		p.stages = append(p.stages, s.Name())
	}

	var run cleaner.Cleaner = cleaner.NewNoop()
	if len(stages) > 0 {
		run = cleaner.NewChain(stages...)
	}
	p.run = run
	if p.cached {
		p.memo = cleaner.NewMemo(run, p.cacheSize)
		p.run = p.memo
	}
	return p
}

// Config returns the configuration the pipeline was built with.
func (p *Pipeline) Config() Config {
	return p.config
}

// Stages returns the names of the enabled stages in execution order.
func (p *Pipeline) Stages() []string {
	out := make([]string, len(p.stages))
	copy(out, p.stages)
	return out
}

// Name returns the pipeline name, e.g. "tidy(decode->strip->whitespace)".
func (p *Pipeline) Name() string {
	return "tidy(" + strings.Join(p.Stages(), "->") + ")"
}

// CleanString cleans a single string.
func (p *Pipeline) CleanString(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	return p.run.Clean(s)
}

// Clean converts value to text and cleans it. Missing values, values
// that cannot be converted and stage errors all yield "".
func (p *Pipeline) Clean(value any) string {
	s, ok := coerce(value)
	if !ok {
		return ""
	}
	out, err := p.CleanString(s)
	if err != nil {
		return ""
	}
	return out
}

// HitRate returns the cache hit rate, or 0 when the pipeline is uncached.
func (p *Pipeline) HitRate() float64 {
	if p.memo == nil {
		return 0
	}
	return p.memo.HitRate()
}

// coerce returns the text form of value. It reports false for missing
// values and for values whose conversion panics.
func coerce(value any) (s string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s, ok = "", false
		}
	}()

	switch v := value.(type) {
	case nil:
		return "", false
	case table.Value:
		if v.IsNull() {
			return "", false
		}
		return v.String(), true
	case *table.Value:
		if v == nil || v.IsNull() {
			return "", false
		}
		return v.String(), true
	case string:
		return v, true
	case []byte:
		return string(v), true
	case fmt.Stringer:
		return v.String(), true
	case error:
		return v.Error(), true
	default:
		return fmt.Sprint(v), true
	}
}

// pipelineCleaner exposes a Pipeline as a cleaner.Cleaner.
type pipelineCleaner struct{ p *Pipeline }

func (c *pipelineCleaner) Clean(text string) (string, error) { return c.p.CleanString(text) }
func (c *pipelineCleaner) Name() string                      { return c.p.Name() }

var _ cleaner.Cleaner = (*pipelineCleaner)(nil)

// AsCleaner returns p as a cleaner.Cleaner.
func (p *Pipeline) AsCleaner() cleaner.Cleaner {
	return &pipelineCleaner{p: p}
}
