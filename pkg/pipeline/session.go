package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dsai-cliques/cliques/pkg/errors"
	"github.com/dsai-cliques/cliques/pkg/observability"
	"github.com/dsai-cliques/cliques/pkg/panel"
	"github.com/dsai-cliques/cliques/pkg/scene"
	"github.com/dsai-cliques/cliques/pkg/selection"
)

// Session holds one user's selection and the last successful render pass.
//
// Select is the single write path. A selection that cannot be resolved
// leaves both the selection and the current result untouched, so the view
// keeps drawing the previous scene while the panel reports the problem.
type Session struct {
	runner *Runner
	snap   Snapshot
	opts   scene.Options
	state  *selection.State

	mu      sync.RWMutex
	current Result
}

// NewSession starts a session on snap with nobody selected and runs the
// initial render pass. A nil runner uses an uncached runner.
func NewSession(ctx context.Context, runner *Runner, snap Snapshot, opts scene.Options) (*Session, error) {
	if runner == nil {
		runner = NewRunner(nil, nil, nil)
	}
	s := &Session{
		runner: runner,
		snap:   snap,
		opts:   opts.WithDefaults(),
		state:  selection.NewState(),
	}
	res, err := runner.Render(ctx, snap, selection.Unselected, s.opts)
	if err != nil {
		return nil, err
	}
	s.current = res
	return s, nil
}

// Select resolves input and re-renders. On success the new result becomes
// current. On failure the returned result carries the previous scene and an
// error panel, and the error is returned.
func (s *Session) Select(ctx context.Context, input string) (Result, error) {
	prev := s.Current()

	sel, err := selection.Resolve(s.snap.Network, input)
	if err != nil {
		observability.Render().OnSelectionError(ctx, string(errors.GetCode(err)))
		s.runner.Logger.Debug("selection failed", "input", input, "error", err)
		return Result{
			ID:         uuid.NewString(),
			SelectedID: prev.SelectedID,
			Selection:  prev.Selection,
			Panel:      panel.ErrorPanel(err),
			Scene:      prev.Scene,
		}, err
	}

	res, err := s.runner.Render(ctx, s.snap, sel, s.opts)
	if err != nil {
		return Result{
			ID:         uuid.NewString(),
			SelectedID: prev.SelectedID,
			Selection:  prev.Selection,
			Panel:      panel.ErrorPanel(err),
			Scene:      prev.Scene,
		}, err
	}

	s.mu.Lock()
	s.current = res
	s.mu.Unlock()
	s.state.Apply(sel)
	return res, nil
}

// Current returns the last successful result.
func (s *Session) Current() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Selection returns the current selection.
func (s *Session) Selection() selection.Selection {
	return s.state.Current()
}

// OnChange registers fn to be called after the selection changes.
func (s *Session) OnChange(fn selection.Listener) {
	s.state.Subscribe(fn)
}

// Options returns the selection control entries for the session's network.
func (s *Session) Options() []string {
	return selection.Options(s.snap.Network)
}
