package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"knagent-be/internal/pkg/logger"
	"knagent-be/pkg/llm"
)

const (
	DefaultMaxIterations   = 8
	DefaultMaxParseRetries = 3

	// IterationLimitAnswer is returned when the loop runs out of iterations without a final answer.
	IterationLimitAnswer = "Agent stopped due to iteration limit or time limit."
)

type State int

const (
	StateThinking State = iota
	StateActionDispatch
	StateObserved
	StateFinalAnswer
)

func (s State) String() string {
	switch s {
	case StateThinking:
		return "Thinking"
	case StateActionDispatch:
		return "ActionDispatch"
	case StateObserved:
		return "Observed"
	case StateFinalAnswer:
		return "FinalAnswer"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Config struct {
	MaxIterations   int
	MaxParseRetries int
	Temperature     float64
	// Now is the clock used for the prompt date.
	Now func() time.Time
}

type Request struct {
	Identity Identity
	Question string
	History  []HistoryTurn
}

type Result struct {
	Answer     string
	Steps      []Step
	Iterations int
	// Truncated is set when the answer is IterationLimitAnswer.
	Truncated bool
}

// Loop drives one ReAct conversation turn. It is safe for concurrent use;
// all per-request state lives in Run.
type Loop struct {
	llm    llm.LLMProvider
	tools  *ToolSet
	cfg    Config
	logger logger.ILogger
}

func NewLoop(provider llm.LLMProvider, tools *ToolSet, cfg Config, log logger.ILogger) *Loop {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.MaxParseRetries < 0 {
		cfg.MaxParseRetries = DefaultMaxParseRetries
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Loop{
		llm:    provider,
		tools:  tools,
		cfg:    cfg,
		logger: log,
	}
}

// Run returns a non-empty answer, ErrParseRetriesExhausted, or a *BackendError.
func (l *Loop) Run(ctx context.Context, req Request) (*Result, error) {
	var (
		steps         []Step
		pending       *Decision
		observation   string
		iterations    int
		parseFailures int
		final         string
	)

	names := l.tools.Names()
	descriptors := l.tools.Descriptors()
	now := l.cfg.Now()
	state := StateThinking

	for {
		switch state {
		case StateThinking:
			if iterations >= l.cfg.MaxIterations {
				l.logger.Warn("AgentLoop", "Iteration limit reached", map[string]interface{}{
					"user_id":    req.Identity.UserID,
					"iterations": iterations,
				})
				return &Result{Answer: IterationLimitAnswer, Steps: steps, Iterations: iterations, Truncated: true}, nil
			}
			if err := ctx.Err(); err != nil {
				return nil, &BackendError{Op: "context", Err: err}
			}
			iterations++

			prompt := renderPrompt(promptData{
				Now:         now,
				Descriptors: descriptors,
				History:     req.History,
				Question:    req.Question,
				Steps:       steps,
			})
			output, err := l.llm.Generate(ctx, prompt,
				llm.WithStop(stopSequence),
				llm.WithTemperature(l.cfg.Temperature),
			)
			if err != nil {
				return nil, &BackendError{Op: "llm", Err: err}
			}

			decision, err := Parse(output, names)
			if err != nil {
				var perr *ParseError
				if !errors.As(err, &perr) {
					return nil, err
				}
				parseFailures++
				l.logger.Debug("AgentLoop", "Rejected model output", map[string]interface{}{
					"attempt": parseFailures,
					"reason":  perr.Observation,
				})
				if parseFailures > l.cfg.MaxParseRetries {
					return nil, fmt.Errorf("%w: %s", ErrParseRetriesExhausted, perr.Observation)
				}
				steps = append(steps, Step{Log: perr.Output, Observation: perr.Observation})
				continue
			}

			if decision.Final {
				final = decision.Answer
				state = StateFinalAnswer
			} else {
				pending = decision
				state = StateActionDispatch
			}

		case StateActionDispatch:
			l.logger.Info("AgentLoop", "Dispatching tool", map[string]interface{}{
				"tool":    string(pending.Tool),
				"user_id": req.Identity.UserID,
			})
			obs, err := l.tools.Dispatch(ctx, req.Identity, pending.Tool, pending.Input)
			if err != nil {
				return nil, &BackendError{Op: "tool " + string(pending.Tool), Err: err}
			}
			observation = obs
			state = StateObserved

		case StateObserved:
			tool := pending.Tool
			steps = append(steps, Step{
				Thought:     pending.Thought,
				Action:      &tool,
				ActionInput: pending.Input,
				Observation: observation,
				Log:         pending.Log,
			})
			pending = nil
			state = StateThinking

		case StateFinalAnswer:
			return &Result{Answer: final, Steps: steps, Iterations: iterations}, nil
		}
	}
}
