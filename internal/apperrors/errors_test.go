package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad date"), KindValidation},
		{"wrapped conflict", fmt.Errorf("create: %w", Conflict("User already exists")), KindConflict},
		{"plain error", errors.New("boom"), KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Kind]int{
		KindValidation: http.StatusBadRequest,
		KindNotFound:   http.StatusNotFound,
		KindAuth:       http.StatusUnauthorized,
		KindForbidden:  http.StatusForbidden,
		KindConflict:   http.StatusConflict,
		KindInternal:   http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := kind.HTTPStatus(); got != want {
			t.Errorf("%s: got %d, want %d", kind, got, want)
		}
	}
}

func TestPublicMessageHidesInternalDetail(t *testing.T) {
	err := Internal("query users", errors.New("connection refused on 10.0.0.4"))
	if got := PublicMessage(err); got != "Server error" {
		t.Fatalf("PublicMessage() = %q", got)
	}
	if got := PublicMessage(NotFound("User not found")); got != "User not found" {
		t.Fatalf("PublicMessage() = %q", got)
	}
}

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("outer: %w", NotFound("Application not found"))
	if !errors.Is(err, NotFound("")) {
		t.Fatal("expected errors.Is to match on kind")
	}
	if errors.Is(err, Conflict("")) {
		t.Fatal("did not expect a conflict match")
	}
}
