package primitives

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name:     "full error",
			err:      WrapError(KindInvalidMixin, "Walker", errors.New("boom"), "mixin %d rejected", 2),
			contains: []string{"[invalid_mixin]", "Walker", "mixin 2 rejected", "caused by: boom"},
		},
		{
			name:     "minimal error",
			err:      &Error{Kind: KindNotFound},
			contains: []string{"[not_found]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, missing %q", msg, want)
				}
			}
		})
	}
}

func TestError_IsMatchesKind(t *testing.T) {
	err := NewError(KindDuplicateStatic, "x", "static already defined")

	if !errors.Is(err, ErrDuplicateStatic) {
		t.Error("errors.Is should match on kind")
	}
	if errors.Is(err, ErrInvalidMixin) {
		t.Error("errors.Is should not match a different kind")
	}
}

func TestError_UnwrapAndKindOf(t *testing.T) {
	cause := errors.New("init failed")
	err := WrapError(KindInvalidRecipe, "", cause, "")

	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
	kind, ok := KindOf(err)
	if !ok || kind != KindInvalidRecipe {
		t.Errorf("KindOf() = %q, %v", kind, ok)
	}
	if _, ok := KindOf(cause); ok {
		t.Error("KindOf on plain error should report false")
	}
}
