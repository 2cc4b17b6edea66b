package token

import "testing"

func TestPositionString(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{File: "a.duby", Line: 3, Column: 7}, "a.duby:3:7"},
		{Position{File: "a.duby", Line: 3}, "a.duby:3"},
		{Position{File: "a.duby"}, "a.duby"},
		{Position{Line: 1, Column: 2}, "<input>:1:2"},
	}
	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("Position.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPositionBefore(t *testing.T) {
	a := Position{File: "a", Line: 1, Column: 5}
	b := Position{File: "a", Line: 2, Column: 1}
	c := Position{File: "b", Line: 1, Column: 1}
	if !a.Before(b) || b.Before(a) {
		t.Errorf("expected %v before %v", a, b)
	}
	if !b.Before(c) {
		t.Errorf("expected file ordering %v before %v", b, c)
	}
	if a.Before(a) {
		t.Errorf("position must not sort before itself")
	}
}
