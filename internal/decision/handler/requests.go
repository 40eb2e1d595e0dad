package handler

import (
	"strings"

	"fairgate/internal/domain"
	dErrors "fairgate/pkg/domain-errors"
)

// DecideRequest is the HTTP request body for POST /compliance/decide.
type DecideRequest struct {
	CaseData       domain.CaseContext `json:"case_data"`
	ProposedAction string             `json:"proposed_action"`
}

// Validate validates the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *DecideRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}

	r.ProposedAction = strings.TrimSpace(r.ProposedAction)
	if r.ProposedAction == "" {
		return dErrors.New(dErrors.CodeValidation, "proposed_action is required")
	}
	if len(r.ProposedAction) > 200 {
		return dErrors.New(dErrors.CodeValidation, "proposed_action must be at most 200 characters")
	}

	return nil
}
