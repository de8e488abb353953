package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"localflow/internal/domain"
	"localflow/internal/ports"
)

// PipelineConfig carries the per-run settings the worker needs.
type PipelineConfig struct {
	Language string
	Mode     domain.Mode
}

type job struct {
	clip     domain.Clip
	complete func(domain.Outcome)
}

// Pipeline runs clip processing on a single background worker. Capacity
// is one: a second Submit while a job is pending or running is rejected
// rather than queued.
type Pipeline struct {
	transcriber ports.Transcriber
	enhancer    ports.Enhancer
	rewriters   []ports.Rewriter
	history     ports.History
	emitter     ports.Emitter
	cfg         PipelineConfig

	ctx    context.Context
	cancel context.CancelFunc
	jobs   chan job
}

func NewPipeline(
	transcriber ports.Transcriber,
	enhancer ports.Enhancer,
	rewriters []ports.Rewriter,
	history ports.History,
	emitter ports.Emitter,
	cfg PipelineConfig,
) *Pipeline {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pipeline{
		transcriber: transcriber,
		enhancer:    enhancer,
		rewriters:   rewriters,
		history:     history,
		emitter:     emitter,
		cfg:         cfg,
		ctx:         ctx,
		cancel:      cancel,
		jobs:        make(chan job, 1),
	}
	go p.run()
	return p
}

// Submit hands a clip to the worker. It never blocks: false means the
// worker is busy and the clip was not accepted.
func (p *Pipeline) Submit(clip domain.Clip, complete func(domain.Outcome)) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobs <- job{clip: clip, complete: complete}:
		return true
	default:
		return false
	}
}

// Close stops the worker. A job already running is abandoned mid-flight;
// its context is cancelled and its completion callback may never fire.
func (p *Pipeline) Close() {
	p.cancel()
}

func (p *Pipeline) run() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case j := <-p.jobs:
			out := p.process(p.ctx, j.clip)
			if j.complete != nil {
				j.complete(out)
			}
		}
	}
}

func (p *Pipeline) process(ctx context.Context, clip domain.Clip) domain.Outcome {
	var out domain.Outcome

	text, err := p.transcriber.Transcribe(ctx, clip, p.cfg.Language)
	if err != nil {
		log.Printf("[localflow] transcription failed: %v", err)
		out.Err = fmt.Errorf("transcribe: %w", err)
		return out
	}

	for _, rw := range p.rewriters {
		text = rw.Apply(text)
	}

	if p.enhancer != nil && strings.TrimSpace(text) != "" {
		start := time.Now()
		enhanced, err := p.enhancer.Enhance(ctx, text)
		out.EnhanceElapsed = time.Since(start)
		if err != nil {
			log.Printf("[localflow] enhancement failed, using raw transcript: %v", err)
		} else if enhanced != text {
			out.Enhanced = true
		}
		text = enhanced
	}

	out.Text = text
	if strings.TrimSpace(text) == "" {
		log.Printf("[localflow] no speech detected")
		return out
	}

	if p.history != nil {
		if err := p.history.Append(text, p.cfg.Mode); err != nil {
			log.Printf("[localflow] history append failed: %v", err)
		}
	}

	if err := p.emitter.Emit(text); err != nil {
		log.Printf("[localflow] emit failed: %v", err)
		out.Err = fmt.Errorf("emit: %w", err)
		return out
	}
	out.Emitted = true
	return out
}
