package commands

import "context"

// Sequence runs commands strictly in order as one all-or-nothing unit.
// When a member fails, the members that already completed are rolled
// back before Execute returns the member's error, so a later reader
// never observes a partial application.
type Sequence struct {
	steps    []Command
	executed []Command
}

func NewSequence(steps ...Command) *Sequence {
	return &Sequence{steps: steps}
}

func (s *Sequence) Execute(ctx context.Context) error {
	for _, step := range s.steps {
		if err := step.Execute(ctx); err != nil {
			_ = s.Rollback(ctx)
			return err
		}
		s.executed = append(s.executed, step)
	}

	// Full success: drop the progress record so a later external
	// Rollback reverts every member.
	s.executed = nil

	return nil
}

// Rollback undoes the members completed by a failed Execute, or every
// member after a fully successful one. Member rollbacks are idempotent,
// so repeated calls are harmless.
func (s *Sequence) Rollback(ctx context.Context) error {
	targets := s.steps
	if len(s.executed) != 0 {
		targets = s.executed
	}

	var firstErr error
	for _, step := range targets {
		if err := step.Rollback(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	s.executed = nil

	return firstErr
}
