// ABOUTME: Prewarm worker synthesizes an article's sentences ahead of playback
// ABOUTME: Managed worker pool filling the speech cache in the background

package workers

import (
	"context"
	"sync"
	"time"

	"yomu-news-api/core/domain"
	"yomu-news-api/core/interfaces"
	"yomu-news-api/core/segment"
)

// PrewarmJob asks for every sentence of an article to be synthesized
type PrewarmJob struct {
	SourceURL string
	Voice     string
	Speed     float64

	// Done receives the outcome when set
	Done chan<- PrewarmResult
}

// PrewarmResult reports how a job went
type PrewarmResult struct {
	SourceURL   string
	Sentences   int
	Synthesized int
	Err         error
}

// PrewarmWorker manages the prewarm pool
type PrewarmWorker struct {
	articles   interfaces.ArticleService
	speech     interfaces.SpeechService
	logger     interfaces.Logger
	jobQueue   chan *PrewarmJob
	maxWorkers int
	queueSize  int
	submitWait time.Duration
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	running    bool
}

// WorkerConfig holds configuration for the prewarm worker
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int

	// SubmitTimeout bounds how long SubmitJob waits for queue space
	SubmitTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers:    4,
		QueueSize:     100,
		SubmitTimeout: 5 * time.Second,
	}
}

// NewPrewarmWorker creates a new prewarm worker
func NewPrewarmWorker(articles interfaces.ArticleService, speech interfaces.SpeechService, logger interfaces.Logger, config WorkerConfig) *PrewarmWorker {
	ctx, cancel := context.WithCancel(context.Background())

	defaults := DefaultWorkerConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.SubmitTimeout <= 0 {
		config.SubmitTimeout = defaults.SubmitTimeout
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	return &PrewarmWorker{
		articles:   articles,
		speech:     speech,
		logger:     logger,
		jobQueue:   make(chan *PrewarmJob, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		queueSize:  config.QueueSize,
		submitWait: config.SubmitTimeout,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the worker pool
func (pw *PrewarmWorker) Start() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if pw.running {
		return nil
	}

	for i := 0; i < pw.maxWorkers; i++ {
		pw.wg.Add(1)
		go pw.run(i)
	}

	pw.running = true
	return nil
}

// Stop stops the worker pool. Jobs still queued are dropped.
func (pw *PrewarmWorker) Stop() error {
	pw.mu.Lock()
	defer pw.mu.Unlock()

	if !pw.running {
		return nil
	}

	pw.cancel()
	pw.wg.Wait()

	pw.running = false
	return nil
}

// SubmitJob queues a job
func (pw *PrewarmWorker) SubmitJob(job *PrewarmJob) error {
	pw.mu.Lock()
	if !pw.running {
		pw.mu.Unlock()
		return ErrWorkerNotRunning
	}
	pw.mu.Unlock()

	timer := time.NewTimer(pw.submitWait)
	defer timer.Stop()

	select {
	case pw.jobQueue <- job:
		return nil
	case <-timer.C:
		return ErrQueueFull
	case <-pw.ctx.Done():
		return ErrWorkerNotRunning
	}
}

// run is the main loop for each worker
func (pw *PrewarmWorker) run(id int) {
	defer pw.wg.Done()

	for {
		select {
		case job := <-pw.jobQueue:
			result := pw.processJob(job)
			if result.Err != nil {
				pw.logger.Warn("Prewarm job failed", map[string]interface{}{
					"worker": id,
					"url":    job.SourceURL,
					"error":  result.Err.Error(),
				})
			} else {
				pw.logger.Info("Prewarm job finished", map[string]interface{}{
					"worker":      id,
					"url":         job.SourceURL,
					"sentences":   result.Sentences,
					"synthesized": result.Synthesized,
				})
			}
			if job.Done != nil {
				select {
				case job.Done <- result:
				case <-pw.ctx.Done():
				}
			}
		case <-pw.ctx.Done():
			return
		}
	}
}

// processJob synthesizes each sentence in order, stopping at the first failure
func (pw *PrewarmWorker) processJob(job *PrewarmJob) PrewarmResult {
	result := PrewarmResult{SourceURL: job.SourceURL}

	fetched, err := pw.articles.FetchNews(pw.ctx, job.SourceURL)
	if err != nil {
		result.Err = err
		return result
	}

	sentences := segment.Segment(fetched.Article.Content)
	result.Sentences = len(sentences)
	for _, s := range sentences {
		if pw.ctx.Err() != nil {
			result.Err = pw.ctx.Err()
			return result
		}
		text := s.Text()
		if text == "" {
			continue
		}
		req := domain.SpeechRequest{Text: text, Voice: job.Voice, Speed: job.Speed}
		if _, err := pw.speech.Synthesize(pw.ctx, req); err != nil {
			result.Err = err
			return result
		}
		result.Synthesized++
	}
	return result
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
