package platform

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in    string
		want  ID
		valid bool
	}{
		{"freelancer", Freelancer, true},
		{"career_copilot", CareerCopilot, true},
		{"both", "", false},
		{"", "", false},
		{"jobboard", "", false},
	}

	for _, tc := range cases {
		got, ok := Parse(tc.in)
		if ok != tc.valid || got != tc.want {
			t.Errorf("Parse(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.valid)
		}
	}
}

func TestDedupEmail(t *testing.T) {
	id := uuid.New()

	withEmail := Account{ID: id, Email: "a@x.com"}
	if got := withEmail.DedupEmail(Freelancer); got != "a@x.com" {
		t.Errorf("DedupEmail with real email = %q, want a@x.com", got)
	}

	noEmail := Account{ID: id}
	want := fmt.Sprintf("career_copilot_%s@placeholder.com", id)
	if got := noEmail.DedupEmail(CareerCopilot); got != want {
		t.Errorf("DedupEmail placeholder = %q, want %q", got, want)
	}
}

func TestSetGet(t *testing.T) {
	s := Set{}
	if s.Get(Freelancer) != nil || s.Get(CareerCopilot) != nil {
		t.Fatal("empty set should return nil stores")
	}
	if len(s.All()) != 0 {
		t.Fatal("empty set should list no stores")
	}
	if s.Get("unknown") != nil {
		t.Fatal("unknown platform should return nil")
	}
}
