package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestParsePizzaSize(t *testing.T) {
	cases := map[string]PizzaSize{
		"SMALL":       SizeSmall,
		"medium":      SizeMedium,
		" Large ":     SizeLarge,
		"extra_large": SizeExtraLarge,
	}
	for in, want := range cases {
		got, err := ParsePizzaSize(in)
		if err != nil {
			t.Fatalf("ParsePizzaSize(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParsePizzaSize(%q) = %s, want %s", in, got, want)
		}
	}

	for _, bad := range []string{"", "HUGE", "small-ish"} {
		if _, err := ParsePizzaSize(bad); !errors.Is(err, ErrValidation) {
			t.Fatalf("ParsePizzaSize(%q): expected ErrValidation, got %v", bad, err)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	got, err := ParseOrderStatus("delivered")
	if err != nil || got != StatusDelivered {
		t.Fatalf("expected DELIVERED, got %s (%v)", got, err)
	}
	if _, err := ParseOrderStatus("COOKING"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestValidateQuantity(t *testing.T) {
	if err := ValidateQuantity(1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, q := range []int{0, -3} {
		if err := ValidateQuantity(q); KindOf(err) != KindValidation {
			t.Fatalf("quantity %d: expected validation error, got %v", q, err)
		}
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("lookup: %w", ErrOrderNotFound)
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not_found, got %s", KindOf(err))
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatalf("expected internal for plain errors")
	}
}
