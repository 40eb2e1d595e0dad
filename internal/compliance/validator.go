// Package compliance validates proposed collection actions against FDCPA,
// TCPA, CFPB Regulation F, and company policy. Checks are pure functions over
// (action, case context, evaluation time); the validator only sequences them
// and aggregates their outcomes.
package compliance

import (
	"time"

	"fairgate/internal/domain"
)

// checkFunc is one regulatory predicate. Checks are independent: each one
// inspects the action and context and reports its own outcome without seeing
// the others.
type checkFunc func(action string, cc domain.CaseContext, now time.Time) CheckResult

// Validator runs the ordered check sequence. Order affects presentation only;
// the aggregate status is order-insensitive.
type Validator struct {
	policy Policy
	checks []checkFunc
	clock  func() time.Time
}

// Option configures the Validator.
type Option func(*Validator)

// WithClock overrides the time source for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(v *Validator) {
		v.clock = clock
	}
}

// NewValidator builds a validator with the fixed check sequence. New
// regulatory checks are added here without touching arbitration logic.
func NewValidator(policy Policy, opts ...Option) *Validator {
	v := &Validator{
		policy: policy,
		clock:  time.Now,
	}
	v.checks = []checkFunc{
		v.checkContactTimeWindow,
		v.checkFrequencyLimits,
		v.checkConsent,
		v.checkDisputeHandling,
		v.checkVulnerableDebtor,
		v.checkBankruptcyStay,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs every check against the proposed action and aggregates the
// results. The aggregate status is FAILED if any check fails, otherwise
// PASSED_WITH_WARNINGS if any check warns, otherwise PASSED.
func (v *Validator) Validate(action string, cc domain.CaseContext) Result {
	now := v.clock()

	result := Result{
		Status:     StatusPassed,
		Checks:     make([]CheckResult, 0, len(v.checks)),
		Violations: []Violation{},
		Warnings:   []Warning{},
	}

	for _, check := range v.checks {
		cr := check(action, cc, now)
		result.Checks = append(result.Checks, cr)

		switch cr.Status {
		case CheckFail:
			result.Status = StatusFailed
			if cr.Violation != nil {
				result.Violations = append(result.Violations, *cr.Violation)
			}
		case CheckWarning:
			if result.Status == StatusPassed {
				result.Status = StatusPassedWithWarnings
			}
			if cr.Warning != nil {
				result.Warnings = append(result.Warnings, *cr.Warning)
			}
		}
	}

	return result
}
