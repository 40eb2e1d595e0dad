package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: These are core error primitives used at every trust boundary.
// Unit tests ensure invariants like "wrapped domain errors preserve original code"
// and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeNotFound, Message: "record not found"}
		s.Equal("record not found", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeNotFound}
		s.Equal("not_found", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("database connection failed")
		err := &Error{Code: CodeInternal, Message: "service error", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("returns nil when no wrapped error", func() {
		err := &Error{Code: CodeNotFound, Message: "not found"}
		s.Nil(err.Unwrap())
	})

	s.Run("works with errors.Unwrap", func() {
		inner := errors.New("root cause")
		err := &Error{Code: CodeInternal, Err: inner}
		s.Equal(inner, errors.Unwrap(err))
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeValidation, Message: "action is required"}
		err2 := &Error{Code: CodeValidation, Message: "case id is required"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := &Error{Code: CodeInternal}
		s.False(err1.Is(err2))
	})

	s.Run("does not match non-domain errors", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := errors.New("not found")
		s.False(err1.Is(err2))
	})
}

func (s *DomainErrorsSuite) TestWrap() {
	s.Run("wraps plain error with new code", func() {
		inner := errors.New("connection refused")
		err := Wrap(inner, CodeInternal, "audit store unavailable")

		s.True(HasCode(err, CodeInternal))
		s.Equal("audit store unavailable", err.Error())
		s.ErrorIs(err, inner)
	})

	s.Run("preserves code of wrapped domain error", func() {
		inner := New(CodeValidation, "missing proposed action")
		err := Wrap(inner, CodeInternal, "decision rejected")

		s.True(HasCode(err, CodeValidation))
		s.False(HasCode(err, CodeInternal))
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.Run("finds code through wrapping", func() {
		err := Wrap(New(CodeValidation, "bad input"), CodeInternal, "outer")
		s.True(HasCode(err, CodeValidation))
	})

	s.Run("false for nil error", func() {
		s.False(HasCode(nil, CodeValidation))
	})

	s.Run("false for plain errors", func() {
		s.False(HasCode(errors.New("boom"), CodeInternal))
	})
}
