package services

import "testing"

func TestValidTransition(t *testing.T) {
	cases := []struct {
		event string
		from  string
		valid bool
	}{
		{EventStart, "Pending", true},
		{EventStart, "In Progress", false},
		{EventStart, "Completed", false},
		{EventStart, "Cancelled", false},
		{EventFinish, "In Progress", true},
		{EventFinish, "Pending", false},
		{EventFinish, "Completed", false},
		{EventFinish, "Cancelled", false},
		{EventCancel, "Pending", true},
		{EventCancel, "In Progress", false},
		{EventCancel, "Completed", false},
		{EventCancel, "Cancelled", false},
		{EventRate, "Completed", true},
		{EventRate, "Pending", false},
		{EventRate, "In Progress", false},
		{EventRate, "Cancelled", false},
		{"unknown", "Pending", false},
	}

	for _, tt := range cases {
		if got := ValidTransition(tt.event, tt.from); got != tt.valid {
			t.Fatalf("ValidTransition(%q, %q)=%v, want %v", tt.event, tt.from, got, tt.valid)
		}
	}
}
