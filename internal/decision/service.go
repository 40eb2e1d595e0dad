// Package decision orchestrates the compliance decision pipeline: regulatory
// validation and ethical risk scoring run in parallel, arbitration combines
// them into a terminal decision, and the explanation layer narrates the
// result. Every evaluation yields a complete record; there is no partial
// outcome.
package decision

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"fairgate/internal/audit"
	"fairgate/internal/compliance"
	"fairgate/internal/decision/metrics"
	"fairgate/internal/domain"
	"fairgate/internal/ethics"
	"fairgate/internal/explain"
	dErrors "fairgate/pkg/domain-errors"
	"fairgate/pkg/requestcontext"
)

// Validator is the regulatory side of the pipeline.
type Validator interface {
	Validate(action string, cc domain.CaseContext) compliance.Result
	SuggestAlternatives(action string, cc domain.CaseContext, result compliance.Result) []compliance.Alternative
}

// Scorer is the ethical side of the pipeline.
type Scorer interface {
	Assess(action string, cc domain.CaseContext) ethics.Assessment
}

// Explainer narrates a decision after arbitration.
type Explainer interface {
	Explain(decision domain.Decision, action string, cc domain.CaseContext, comp compliance.Result, eth ethics.Assessment) explain.Explanation
}

// AuditPublisher records the evaluation for the regulatory audit trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service coordinates the decision pipeline. It holds no request state and is
// safe for concurrent use.
type Service struct {
	validator Validator
	scorer    Scorer
	explainer Explainer
	auditor   AuditPublisher

	config  Config
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
	clock   func() time.Time
	newID   func() string
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics collector for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithConfig overrides the arbitration constants.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithClock overrides the time source for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithIDGenerator overrides decision ID generation for deterministic tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// WithTracer injects a pre-configured tracer.
func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New creates a decision service with required dependencies.
// Panics if required dependencies are nil - fail fast at startup.
// The auditor is required for compliance: every decision must leave a trail.
func New(
	validator Validator,
	scorer Scorer,
	explainer Explainer,
	auditor AuditPublisher,
	opts ...Option,
) *Service {
	if validator == nil {
		panic("decision.New: validator is required")
	}
	if scorer == nil {
		panic("decision.New: scorer is required")
	}
	if explainer == nil {
		panic("decision.New: explainer is required")
	}
	if auditor == nil {
		panic("decision.New: auditor is required for compliance audit trail")
	}

	s := &Service{
		validator: validator,
		scorer:    scorer,
		explainer: explainer,
		auditor:   auditor,
		config:    DefaultConfig(),
		clock:     time.Now,
		newID:     newDecisionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("fairgate/decision")
	}
	return s
}

// componentResults holds the parallel evaluation outputs. Each goroutine
// writes to its own field, avoiding data races.
type componentResults struct {
	compliance        compliance.Result
	complianceLatency time.Duration
	ethics            ethics.Assessment
	ethicsLatency     time.Duration
}

// MakeDecision runs the full pipeline for one proposed action. It rejects an
// empty action before entering the pipeline; beyond that every input yields a
// complete record, with missing context fields falling back to documented
// defaults inside the components.
func (s *Service) MakeDecision(ctx context.Context, cc domain.CaseContext, proposedAction string) (*Record, error) {
	if proposedAction == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "proposed action is required")
	}

	// Single authoritative timestamp for the entire evaluation.
	evalTime := s.clock()
	start := time.Now()
	defer func() {
		s.metrics.ObserveEvaluateLatency(time.Since(start))
	}()

	ctx, span := s.tracer.Start(ctx, "decision.MakeDecision", trace.WithAttributes(
		attribute.String("case_id", cc.CaseID),
		attribute.String("proposed_action", proposedAction),
	))
	defer span.End()

	// Compliance validation and ethical scoring are independent; evaluate
	// them in parallel. Explanation is strictly downstream of both.
	var results componentResults
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		cs := time.Now()
		results.compliance = s.validator.Validate(proposedAction, cc)
		results.complianceLatency = time.Since(cs)
		return nil
	})
	g.Go(func() error {
		es := time.Now()
		results.ethics = s.scorer.Assess(proposedAction, cc)
		results.ethicsLatency = time.Since(es)
		return nil
	})
	// Components never error; Wait only joins the goroutines.
	_ = g.Wait()

	s.metrics.ObserveComponentLatency("compliance", results.complianceLatency)
	s.metrics.ObserveComponentLatency("ethics", results.ethicsLatency)

	v := s.config.arbitrate(proposedAction, cc, results.compliance, results.ethics)

	var alternatives []compliance.Alternative
	if v.decision == domain.DecisionBlocked {
		alternatives = s.validator.SuggestAlternatives(proposedAction, cc, results.compliance)
	}
	if alternatives == nil {
		alternatives = []compliance.Alternative{}
	}

	es := time.Now()
	explanation := s.explainer.Explain(v.decision, proposedAction, cc, results.compliance, results.ethics)
	s.metrics.ObserveComponentLatency("explanation", time.Since(es))

	record := s.buildRecord(cc, proposedAction, v, results, alternatives, explanation, evalTime)

	span.SetAttributes(
		attribute.String("decision", string(record.Decision)),
		attribute.String("compliance_status", string(results.compliance.Status)),
		attribute.Float64("risk_score", results.ethics.TotalScore),
	)

	// The audit trail is written fail-open: a storage hiccup must not turn a
	// completed evaluation into a client error.
	s.emitAudit(ctx, record)

	s.metrics.IncrementOutcome(string(record.Decision), string(results.compliance.Status))
	if s.logger != nil {
		s.logger.InfoContext(ctx, "decision evaluated",
			"case_id", cc.CaseID,
			"proposed_action", proposedAction,
			"decision", record.Decision,
			"reason", v.reason,
			"compliance_status", results.compliance.Status,
			"risk_score", results.ethics.TotalScore,
		)
	}

	return record, nil
}

func (s *Service) buildRecord(
	cc domain.CaseContext,
	action string,
	v verdict,
	results componentResults,
	alternatives []compliance.Alternative,
	explanation explain.Explanation,
	evalTime time.Time,
) *Record {
	return &Record{
		CaseID:         cc.CaseID,
		CaseNumber:     cc.CaseNumber,
		ProposedAction: action,
		Decision:       v.decision,
		Confidence:     v.confidence,

		ComplianceValidation:  results.compliance,
		EthicalRiskAssessment: results.ethics,
		Explanation:           explanation,

		AllowedActions:     v.allowedActions,
		BlockedActions:     v.blockedActions,
		AlternativeActions: alternatives,

		HumanOverride: HumanOverride{
			Allowed:               v.overrideAllowed,
			RequiresJustification: true,
			ApprovalLevel:         v.approvalLevel,
		},
		AuditMetadata: AuditMetadata{
			DecisionID:            s.newID(),
			Timestamp:             evalTime.UTC().Format(time.RFC3339Nano),
			DecisionEngineVersion: s.config.EngineVersion,
		},
	}
}

func (s *Service) emitAudit(ctx context.Context, record *Record) {
	event := audit.Event{
		ID:               record.AuditMetadata.DecisionID,
		Timestamp:        s.clock(),
		CaseID:           record.CaseID,
		ProposedAction:   record.ProposedAction,
		Decision:         string(record.Decision),
		ComplianceStatus: string(record.ComplianceValidation.Status),
		RiskScore:        record.EthicalRiskAssessment.TotalScore,
		ApprovalLevel:    string(record.HumanOverride.ApprovalLevel),
		RequestID:        requestcontext.RequestID(ctx),
		EngineVersion:    record.AuditMetadata.DecisionEngineVersion,
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit event not recorded",
			"error", err,
			"case_id", record.CaseID,
			"decision", record.Decision,
		)
	}
}
