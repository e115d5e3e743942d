package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/scour-dev/scour/internal/cache"
	"github.com/scour-dev/scour/internal/config"
	"github.com/scour-dev/scour/internal/providers"
	"github.com/scour-dev/scour/internal/ratelimit"
	"github.com/scour-dev/scour/internal/redact"
)

// Sink receives exactly one summary per analyzed file.
type Sink interface {
	AddFileSummary(path string, findings []Finding)
}

// Engine walks a directory tree and runs every eligible file through the
// analysis pipeline: read, chunk, dispatch, parse, aggregate. One engine
// instance owns the credential rotation, the shared rate limiter, and the
// response cache.
type Engine struct {
	client  providers.Analyzer
	pool    *CredentialPool
	limiter *ratelimit.Limiter
	policy  providers.Policy
	cache   *cache.Cache
	log     *zap.SugaredLogger

	system      string
	extensions  []string
	chunkSize   int
	maxTokens   int
	temperature float64
	redact      bool
	workers     int

	// OnFile is called after each file completes. The CLI uses it to
	// advance the progress bar.
	OnFile func(path string)
}

// NewEngine builds an engine from the effective config. An empty token
// pool is fatal here: nothing can be dispatched without a credential.
func NewEngine(cfg config.Config, client providers.Analyzer, logger *zap.SugaredLogger) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	pool, err := NewCredentialPool(cfg.Tokens)
	if err != nil {
		return nil, err
	}
	profile, err := LoadProfile(cfg.ProfileFile)
	if err != nil {
		return nil, err
	}
	respCache, err := cache.New(cfg.Cache.IsEnabled(), cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, err
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	return &Engine{
		client:  client,
		pool:    pool,
		limiter: ratelimit.New(cfg.Rate.Calls, time.Duration(cfg.Rate.PeriodMs)*time.Millisecond),
		policy: providers.Policy{
			Tries:   cfg.Retry.Tries,
			Delay:   time.Duration(cfg.Retry.DelayMs) * time.Millisecond,
			Backoff: cfg.Retry.Backoff,
			Logger:  logger,
		},
		cache:       respCache,
		log:         logger,
		system:      SystemPrompt(profile),
		extensions:  cfg.Extensions,
		chunkSize:   chunkSize,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		redact:      cfg.Privacy.RedactEnabled(),
		workers:     workers,
	}, nil
}

// Discover walks root and returns the paths of all supported files, in
// lexical walk order. Per-entry walk errors are logged and skipped.
func (e *Engine) Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			e.log.Warnw("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if IsSupported(d.Name(), e.extensions) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Analyze runs the full pipeline over root, handing one FileReport per
// eligible readable file to sink. Files that fail to read are logged and
// skipped without a report; nothing else aborts the traversal.
func (e *Engine) Analyze(ctx context.Context, root string, sink Sink) error {
	files, err := e.Discover(root)
	if err != nil {
		return err
	}
	e.AnalyzeFiles(ctx, files, sink)
	return nil
}

// AnalyzeFiles analyzes an explicit file list. With workers > 1 files are
// processed concurrently in the bounded-semaphore manner; per-file sink
// order is then unspecified, but findings within a file always preserve
// chunk order.
func (e *Engine) AnalyzeFiles(ctx context.Context, files []string, sink Sink) {
	if e.workers <= 1 {
		for _, path := range files {
			e.analyzeFile(ctx, path, sink)
		}
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.workers)
	for _, path := range files {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release
			e.analyzeFile(ctx, path, sink)
		}(path)
	}
	wg.Wait()
}

func (e *Engine) analyzeFile(ctx context.Context, path string, sink Sink) {
	token := e.pool.Next()
	e.log.Infow("analyzing file", "path", path)

	content, err := ReadSource(path)
	if err != nil {
		e.log.Errorw("failed to read file", "path", path, "error", err)
		return
	}

	var chunks []string
	if len(content) > e.chunkSize {
		chunks = Split(content, e.chunkSize)
	} else {
		chunks = []string{content}
	}

	findings := e.collectIssues(ctx, path, token, chunks)
	sink.AddFileSummary(path, findings)

	if e.OnFile != nil {
		e.OnFile(path)
	}
}

// collectIssues dispatches each chunk in order and concatenates the parsed
// findings, so chunk 0's findings always precede chunk 1's. A dispatch
// that degrades (network failure after retries, or any unexpected error)
// contributes a single INFO finding carrying the error text instead of
// silently vanishing.
func (e *Engine) collectIssues(ctx context.Context, path, token string, chunks []string) []Finding {
	findings := []Finding{}
	for i, chunk := range chunks {
		text, degraded := e.process(ctx, path, token, i, chunk)
		if degraded {
			findings = append(findings, Finding{Severity: SeverityInfo, Description: text})
			continue
		}
		findings = append(findings, ParseIssues(e.log, text, path)...)
	}
	return findings
}

// Process submits one chunk and returns the response text. It never
// returns an error: failures degrade to a synthetic error string so a
// single bad chunk cannot take down the run.
func (e *Engine) Process(ctx context.Context, path, token, chunk string) string {
	text, _ := e.process(ctx, path, token, 0, chunk)
	return text
}

func (e *Engine) process(ctx context.Context, path, token string, index int, chunk string) (text string, degraded bool) {
	if e.redact {
		chunk = redact.Secrets(chunk)
	}

	if cached, ok := e.cache.Get(token, chunk); ok {
		e.log.Debugw("cache hit", "path", path, "chunk", index)
		return cached, false
	}

	e.log.Infow("processing chunk", "path", path, "token", token, "chunk", index)

	var resp providers.Response
	err := e.policy.Do(ctx, func() error {
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}
		r, err := e.client.Analyze(ctx, providers.Request{
			Model:        token,
			SystemPrompt: e.system,
			UserPrompt:   chunk,
			MaxTokens:    e.maxTokens,
			Temperature:  e.temperature,
			TopP:         1,
		})
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		if providers.IsTransient(err) {
			e.log.Errorw("network error processing chunk", "path", path, "error", err)
			return "Network error: " + err.Error(), true
		}
		e.log.Errorw("unexpected error processing chunk", "path", path, "error", err)
		return "Error: " + err.Error(), true
	}

	if err := e.cache.Put(token, chunk, resp.Content); err != nil {
		e.log.Warnw("failed to cache response", "path", path, "error", err)
	}
	return resp.Content, false
}
