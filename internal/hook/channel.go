package hook

import (
	"context"
	"sync"
)

// ChannelSource feeds events from a channel to the filter and records each
// verdict. It stands in for an OS hook when replaying recorded input.
type ChannelSource struct {
	events <-chan Event

	mu       sync.Mutex
	verdicts []Verdict
}

// NewChannelSource creates a source reading from events.
func NewChannelSource(events <-chan Event) *ChannelSource {
	return &ChannelSource{events: events}
}

// Run delivers events until the channel is closed or ctx is done.
func (s *ChannelSource) Run(ctx context.Context, filter Filter) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-s.events:
			if !ok {
				return nil
			}
			v := filter(ev)
			s.mu.Lock()
			s.verdicts = append(s.verdicts, v)
			s.mu.Unlock()
		}
	}
}

// Verdicts returns the verdicts recorded so far.
func (s *ChannelSource) Verdicts() []Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Verdict, len(s.verdicts))
	copy(out, s.verdicts)
	return out
}
