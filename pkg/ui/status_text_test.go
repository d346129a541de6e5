package ui

import "testing"

func TestStatusText_Messages(t *testing.T) {
	s := NewStatusText([]string{"Nice!", "Great job!", "Impressive!"}, 0, 0)

	tests := []struct {
		name       string
		apply      func()
		expectText string
		expectSub  string
	}{
		{"get ready", func() { s.GetReady(2) }, "Get ready!", "Wave 2"},
		{"first wave defeated", func() { s.WaveDefeated(1) }, "Nice!", "Wave 1 cleared"},
		{"third wave defeated", func() { s.WaveDefeated(3) }, "Impressive!", "Wave 3 cleared"},
		{"complements wrap", func() { s.WaveDefeated(4) }, "Nice!", "Wave 4 cleared"},
		{"win", s.Win, "You won!", "That was... anticlimactic?"},
		{"lose", s.Lose, "You died!", "Sorry..."},
		{"clear", s.Clear, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.apply()
			if s.Text() != tt.expectText || s.SubText() != tt.expectSub {
				t.Errorf("Expected (%q, %q), got (%q, %q)", tt.expectText, tt.expectSub, s.Text(), s.SubText())
			}
		})
	}
}

// TestStatusText_NoComplements 没有夸奖语时主标题为空
func TestStatusText_NoComplements(t *testing.T) {
	s := NewStatusText(nil, 0, 0)
	s.WaveDefeated(5)

	if s.Text() != "" || s.SubText() != "Wave 5 cleared" {
		t.Errorf("Unexpected (%q, %q)", s.Text(), s.SubText())
	}
}
