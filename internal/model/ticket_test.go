package model

import "testing"

func TestTicketTypeForAmount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		amount uint64
		want   TicketType
	}{
		{"exact one billion is general", 1_000_000_000, TicketGeneral},
		{"ten billion is vip", 10_000_000_000, TicketVIP},
		{"above ten billion is vip", 25_000_000_000, TicketVIP},
		{"just below one billion is backstage", 999_999_999, TicketBackstage},
		{"between thresholds is backstage", 5_000_000_000, TicketBackstage},
		{"just above one billion is backstage", 1_000_000_001, TicketBackstage},
		{"one unit is backstage", 1, TicketBackstage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TicketTypeForAmount(tc.amount); got != tc.want {
				t.Fatalf("TicketTypeForAmount(%d) = %s, want %s", tc.amount, got, tc.want)
			}
		})
	}
}

func TestEventEnrolled(t *testing.T) {
	t.Parallel()

	ev := Event{EnrolledPubkeys: []string{"buyer-a", "buyer-b"}}
	if !ev.Enrolled("buyer-a") {
		t.Fatalf("expected buyer-a to be enrolled")
	}
	if ev.Enrolled("buyer-z") {
		t.Fatalf("did not expect buyer-z to be enrolled")
	}
}
