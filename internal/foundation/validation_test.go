package foundation

import (
	"strings"
	"testing"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

type sample struct {
	Name  string
	Color string
}

func TestValidatorChain(t *testing.T) {
	chain := NewValidatorChain(
		Check("name", "required", "must not be empty", func(s sample) bool { return s.Name != "" }),
	).Add(Check("color", "color", "must start with #", func(s sample) bool { return strings.HasPrefix(s.Color, "#") }))

	t.Run("valid", func(t *testing.T) {
		res := chain.Validate(sample{Name: "App", Color: "#fff"})
		if !res.Valid {
			t.Fatalf("expected valid, got %+v", res.Errors)
		}
		if res.ToError() != nil {
			t.Error("expected nil error for valid result")
		}
	})

	t.Run("collects every failure", func(t *testing.T) {
		res := chain.Validate(sample{Color: "red"})
		if res.Valid {
			t.Fatal("expected invalid result")
		}
		if len(res.Errors) != 2 {
			t.Fatalf("expected 2 errors, got %d", len(res.Errors))
		}

		err := res.ToError()
		if !errors.HasCategory(err, errors.CategoryConfig) {
			t.Errorf("expected config category, got %v", err)
		}
		if !strings.Contains(err.Error(), "name: must not be empty") || !strings.Contains(err.Error(), "color: must start with #") {
			t.Errorf("unexpected message %q", err.Error())
		}
	})
}

func TestCombine(t *testing.T) {
	if !Valid().Combine(Valid()).Valid {
		t.Error("valid+valid should be valid")
	}
	res := Valid().Combine(Invalid(NewFieldError("", "x", "bare")))
	if res.Valid || len(res.Errors) != 1 {
		t.Errorf("unexpected result %+v", res)
	}
	if res.Errors[0].Error() != "bare" {
		t.Errorf("expected bare message, got %q", res.Errors[0].Error())
	}
}
