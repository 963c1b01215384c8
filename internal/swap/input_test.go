package swap

import "testing"

func TestIsValidAmountInput(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"12", true},
		{"12.34", true},
		{"12.", true},
		{".5", true},
		{"0.00000001", true},
		{"12.3.4", false},
		{"-1", false},
		{"+1", false},
		{"1e5", false},
		{"12,34", false},
		{"abc", false},
		{" 12", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsValidAmountInput(tt.input); got != tt.want {
				t.Errorf("IsValidAmountInput(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAcceptAmountKeepsPriorStateOnRejection(t *testing.T) {
	if got := AcceptAmount("12.3", "12.3.4"); got != "12.3" {
		t.Errorf("AcceptAmount = %q, want prior state 12.3", got)
	}
	if got := AcceptAmount("12.3", "12.34"); got != "12.34" {
		t.Errorf("AcceptAmount = %q, want 12.34", got)
	}
	if got := AcceptAmount("12.3", ""); got != "" {
		t.Errorf("AcceptAmount = %q, want empty string accepted", got)
	}
}
