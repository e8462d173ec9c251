package clierr

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *Error
		wantMsg string
	}{
		{
			name:    "simple error message",
			err:     New(Validation, "invalid input", nil),
			wantMsg: "invalid input",
		},
		{
			name:    "error with underlying error",
			err:     New(Network, "request failed", errors.New("connection refused")),
			wantMsg: "request failed",
		},
		{
			name:    "empty message",
			err:     New(Internal, "", nil),
			wantMsg: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("session expired")
	err := New(Auth, "not logged in", underlying)

	if !errors.Is(err, underlying) {
		t.Errorf("errors.Is should reach the underlying error through Unwrap")
	}

	bare := New(NotFound, "no such room", nil)
	if bare.Unwrap() != nil {
		t.Errorf("Unwrap() on an error without a cause should be nil")
	}
}
