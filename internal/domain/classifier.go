package domain

import (
	"errors"

	"foundry.dev/pkg/foundry/internal/hints"
	"foundry.dev/pkg/foundry/internal/hooks"
	m "foundry.dev/pkg/foundry/internal/model"
	"foundry.dev/pkg/foundry/internal/runctx"
)

// NotRevertedMessage is the failure message of an entrypoint that asked for a
// revert and completed normally.
const NotRevertedMessage = "execution did not revert while revert was expected"

// Classify turns the terminal result of a run and its final context into an
// outcome. The captured output is attached whatever the status.
func Classify(name string, runErr error, rc *runctx.RunContext) m.TestOutcome {
	outcome := m.TestOutcome{
		Name:   name,
		Output: rc.Output.Drain(),
	}

	switch {
	case errors.Is(runErr, hints.ErrSkip):
		outcome.Status = m.Skipped
	case errors.Is(runErr, hooks.ErrStepBudgetExceeded):
		outcome.Status = m.Failure
		outcome.Message = runErr.Error()
	case !rc.RevertExpected && runErr == nil:
		outcome.Status = m.Success
	case !rc.RevertExpected:
		outcome.Status = m.Failure
		outcome.Message = runErr.Error()
	case runErr != nil:
		outcome.Status = m.Success
	default:
		outcome.Status = m.Failure
		outcome.Message = NotRevertedMessage
	}

	return outcome
}
