// Package workflow asks a completion service for a workflow and turns the reply into a
// validated, normalized model.Workflow.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/awantoch/flowsketch/adapter"
	"github.com/awantoch/flowsketch/config"
	"github.com/awantoch/flowsketch/constants"
	"github.com/awantoch/flowsketch/event"
	"github.com/awantoch/flowsketch/model"
	"github.com/awantoch/flowsketch/prompt"
	"github.com/awantoch/flowsketch/telemetry"
	"github.com/awantoch/flowsketch/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Publisher receives generation outcome events. event.EventBus satisfies it.
type Publisher interface {
	Publish(topic string, payload any) error
}

// Options tunes each completion call.
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
	// Timeout bounds a single completion call. Zero leaves only the caller's context.
	Timeout time.Duration
}

// OptionsFromConfig reads completion options from cfg.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	timeout, err := cfg.CompletionTimeout()
	if err != nil {
		return Options{}, err
	}
	temperature := constants.DefaultTemperature
	if cfg.Completion.Temperature != nil {
		temperature = *cfg.Completion.Temperature
	}
	return Options{
		Model:       cfg.Completion.Model,
		Temperature: temperature,
		MaxTokens:   cfg.Completion.MaxTokens,
		Timeout:     timeout,
	}, nil
}

// Service generates workflows. It holds no per-request state and is safe for concurrent use.
type Service struct {
	completer adapter.Completer
	opts      Options
	events    Publisher
}

// NewService returns a Service calling completer. events may be nil.
func NewService(completer adapter.Completer, opts Options, events Publisher) *Service {
	return &Service{completer: completer, opts: opts, events: events}
}

// Generate turns description into a workflow with exactly one completion call.
func (s *Service) Generate(ctx context.Context, description string) (*model.Workflow, error) {
	wf, err := s.generate(ctx, description)
	s.record(ctx, wf, err)
	return wf, err
}

func (s *Service) generate(ctx context.Context, description string) (*model.Workflow, error) {
	msgs, err := prompt.Compose(description)
	if err != nil {
		if errors.Is(err, prompt.ErrEmptyDescription) {
			return nil, newError(KindInvalidInput, nil, constants.ResponsePromptRequired)
		}
		return nil, newError(KindInvalidInput, err, "compose prompt")
	}

	raw, err := s.complete(ctx, msgs)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, newError(KindEmptyCompletion, nil, constants.ResponseEmptyCompletion)
	}

	wf, err := Validate(raw)
	if err != nil {
		utils.ErrorCtx(ctx, constants.LogWorkflowParseError, "error", err, "kind", KindOf(err))
		utils.DebugCtx(ctx, "unparseable completion", "raw", raw)
		return nil, err
	}
	return wf, nil
}

func (s *Service) complete(ctx context.Context, msgs prompt.Messages) (string, error) {
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}

	provider := s.completer.ID()
	ctx, span := telemetry.Tracer("flowsketch/workflow").Start(ctx, "completion")
	span.SetAttributes(
		attribute.String("completion.provider", provider),
		attribute.String("completion.model", s.opts.Model),
	)
	defer span.End()

	start := time.Now()
	raw, err := s.completer.Complete(ctx, adapter.CompletionRequest{
		Model:       s.opts.Model,
		System:      msgs.System,
		User:        msgs.User,
		Temperature: s.opts.Temperature,
		MaxTokens:   s.opts.MaxTokens,
		JSONObject:  true,
	})
	telemetry.ObserveCompletion(provider, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", &Error{Kind: KindUpstreamFailure, Err: err}
	}
	return raw, nil
}

func (s *Service) record(ctx context.Context, wf *model.Workflow, err error) {
	reqID, _ := utils.RequestIDFromContext(ctx)
	topic := constants.TopicWorkflowGenerated
	payload := WorkflowEventFor(reqID, wf, err)
	if err != nil {
		topic = constants.TopicWorkflowFailed
		telemetry.RecordGeneration(string(KindOf(err)))
		if !IsParseFailure(err) {
			utils.ErrorCtx(ctx, constants.LogWorkflowGenerateError, "error", err, "kind", KindOf(err))
		}
	} else {
		telemetry.RecordGeneration(telemetry.OutcomeSuccess)
		utils.InfoCtx(ctx, "workflow generated", "steps", len(wf.Steps))
	}

	if s.events == nil {
		return
	}
	if perr := s.events.Publish(topic, payload); perr != nil {
		utils.Warn(constants.LogEventPublishFailed, topic, perr)
	}
}

// WorkflowEventFor builds the event payload describing one generation.
func WorkflowEventFor(requestID string, wf *model.Workflow, err error) event.WorkflowEvent {
	ev := event.WorkflowEvent{RequestID: requestID}
	if wf != nil {
		ev.Steps = len(wf.Steps)
	}
	if err != nil {
		ev.Kind = string(KindOf(err))
		ev.Error = err.Error()
	}
	return ev
}

// String describes the options for startup logs.
func (o Options) String() string {
	return fmt.Sprintf("model=%s temperature=%g max_tokens=%d timeout=%s", o.Model, o.Temperature, o.MaxTokens, o.Timeout)
}
