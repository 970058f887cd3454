package wizard

import "context"

// Status reports the session phase and per-step progress.
func (e *Engine) Status(ctx context.Context) (*StatusResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &StatusResult{
		Phase:    e.store.Phase(),
		SetSlots: e.store.SetSlots(),
	}
	if step, ok := e.store.Step(); ok {
		result.Step = step
	}
	completed, _ := e.store.CompletedSteps()
	result.CompletedSteps = completed
	result.NextStep = nextIncomplete(completed)

	for _, info := range steps {
		result.Steps = append(result.Steps, StepStatus{
			StepInfo:  info,
			Completed: completed.Contains(info.Number),
			Current:   info.Number == result.Step,
		})
	}
	return result, nil
}
