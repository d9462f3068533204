package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stuffshop/backend/internal/problem"
)

func TestSignUpValidationReportsFieldsInOrder(t *testing.T) {
	req := SignUpRequest{Password: "s3cret"}

	fields := req.Validate()
	assert.Equal(t, "username: must not be blank; email: must not be blank", problem.JoinFields(fields))
}

func TestSignUpValidationEmailFormat(t *testing.T) {
	req := SignUpRequest{Username: "alice", Email: "not-an-email", Password: "s3cret"}

	fields := req.Validate()
	assert.Equal(t, "email: must be a well-formed email address", problem.JoinFields(fields))
}

func TestSignUpValidationPassesCleanRequest(t *testing.T) {
	req := SignUpRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret", Name: "Alice"}
	assert.Empty(t, req.Validate())
}

func TestSignInValidation(t *testing.T) {
	assert.Empty(t, SignInRequest{Username: "alice", Password: "x"}.Validate())
	assert.Len(t, SignInRequest{}.Validate(), 2)
}
