package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-loudness/dsp/buffer"
	"github.com/cwbudde/algo-loudness/dsp/module"
)

type stage struct {
	tag string
	m   module.Module
}

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the logger used for lifecycle diagnostics. By default the
// chain logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chain) {
		if l != nil {
			c.log = l
		}
	}
}

// Chain is an ordered list of stages. Stage i+1 reads the output buffer of
// stage i.
type Chain struct {
	stages []stage
	tags   map[string]int
	log    *slog.Logger
}

// New returns an empty Chain.
func New(opts ...Option) *Chain {
	c := &Chain{
		tags: make(map[string]int),
		log:  slog.New(slog.DiscardHandler),
	}

	for _, o := range opts {
		if o != nil {
			o(c)
		}
	}

	return c
}

// Append adds m to the end of the chain. A non-empty tag makes the stage's
// output available through Output and must be unique.
func (c *Chain) Append(tag string, m module.Module) error {
	if m == nil {
		return fmt.Errorf("pipeline: nil module for tag %q", tag)
	}

	if tag != "" {
		if _, exists := c.tags[tag]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
		}

		c.tags[tag] = len(c.stages)
	}

	c.stages = append(c.stages, stage{tag: tag, m: m})

	return nil
}

// Len returns the number of stages.
func (c *Chain) Len() int { return len(c.stages) }

// Modules returns the stages in processing order.
func (c *Chain) Modules() []module.Module {
	mods := make([]module.Module, len(c.stages))
	for i, s := range c.stages {
		mods[i] = s.m
	}

	return mods
}

// Tags returns the stage tags in processing order; untagged stages yield "".
func (c *Chain) Tags() []string {
	tags := make([]string, len(c.stages))
	for i, s := range c.stages {
		tags[i] = s.tag
	}

	return tags
}

// Initialize initializes every stage in order, each with the previous
// stage's output. The first failure aborts.
func (c *Chain) Initialize(in *buffer.Buffer) error {
	if len(c.stages) == 0 {
		return ErrEmptyChain
	}

	next := in
	for i, s := range c.stages {
		if err := s.m.Initialize(next); err != nil {
			c.log.Error("stage initialize failed", "index", i, "stage", s.m.Name(), "tag", s.tag, "err", err)
			return fmt.Errorf("pipeline: stage %d (%s): %w", i, s.m.Name(), err)
		}

		next = s.m.Output()
		c.log.Debug("stage initialized",
			"index", i,
			"stage", s.m.Name(),
			"tag", s.tag,
			"channels", next.Channels(),
			"samples", next.Samples(),
			"sampleRate", next.SampleRate(),
			"frameRate", next.FrameRate(),
		)
	}

	return nil
}

// Process runs one block through every stage.
func (c *Chain) Process(in *buffer.Buffer) error {
	next := in
	for i, s := range c.stages {
		if err := s.m.Process(next); err != nil {
			return fmt.Errorf("pipeline: stage %d (%s): %w", i, s.m.Name(), err)
		}

		next = s.m.Output()
	}

	return nil
}

// Reset clears the state of every stage.
func (c *Chain) Reset() {
	for _, s := range c.stages {
		s.m.Reset()
	}

	c.log.Debug("chain reset", "stages", len(c.stages))
}

// Output returns the output buffer of the stage with the given tag.
func (c *Chain) Output(tag string) (*buffer.Buffer, bool) {
	i, ok := c.tags[tag]
	if !ok {
		return nil, false
	}

	out := c.stages[i].m.Output()

	return out, out != nil
}

// Final returns the output buffer of the last stage, or nil for an empty or
// uninitialized chain.
func (c *Chain) Final() *buffer.Buffer {
	if len(c.stages) == 0 {
		return nil
	}

	return c.stages[len(c.stages)-1].m.Output()
}
