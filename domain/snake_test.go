package domain

import "testing"

func TestNewSnakeInitialBody(t *testing.T) {
	s := NewSnake("a", "red", Cell{X: 5, Y: 5})
	want := []Cell{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}
	if len(s.Body) != InitialBodyLength {
		t.Fatalf("body length = %d, want %d", len(s.Body), InitialBodyLength)
	}
	for i := range want {
		if s.Body[i] != want[i] {
			t.Errorf("Body[%d] = %v, want %v", i, s.Body[i], want[i])
		}
	}
	// 頭が上、尾が下なので初期進行方向は上
	if s.Heading() != DirUp {
		t.Errorf("Heading = %v, want %v", s.Heading(), DirUp)
	}
}

func TestNewSnakeGeneratesID(t *testing.T) {
	s := NewSnake("", "red", Cell{X: 0, Y: 0})
	if s.ID == "" {
		t.Error("ID should be generated when empty")
	}
}

func TestCanTurnRejectsReversal(t *testing.T) {
	s := NewSnake("a", "red", Cell{X: 5, Y: 5})
	if s.CanTurn(DirDown, 20) {
		t.Error("turning back into the neck should be rejected")
	}
	for _, dir := range []Direction{DirUp, DirLeft, DirRight} {
		if !s.CanTurn(dir, 20) {
			t.Errorf("CanTurn(%v) = false, want true", dir)
		}
	}
}

// 首が盤面の反対側にラップしている場合でも方向転換の判定が正しいこと。
func TestCanTurnAcrossWrap(t *testing.T) {
	s := &Snake{ID: "a", Color: "red", Body: []Cell{{X: 5, Y: 0}, {X: 5, Y: 19}, {X: 5, Y: 18}}}
	if s.CanTurn(DirDown, 20) {
		t.Error("reversal through the wrapped edge should be rejected")
	}
	if !s.CanTurn(DirLeft, 20) {
		t.Error("lateral turn should be allowed")
	}
}

func TestAdvanceWithoutGrowth(t *testing.T) {
	s := NewSnake("a", "red", Cell{X: 5, Y: 5})
	s.Advance(Cell{X: 5, Y: 4}, false)
	if s.Len() != InitialBodyLength {
		t.Errorf("Len = %d, want %d", s.Len(), InitialBodyLength)
	}
	if s.Head() != (Cell{X: 5, Y: 4}) {
		t.Errorf("Head = %v, want {5 4}", s.Head())
	}
	// 尾のセルは離れている
	if s.Occupies(Cell{X: 5, Y: 7}) {
		t.Error("old tail cell should be vacated")
	}
}

func TestAdvanceWithGrowth(t *testing.T) {
	s := NewSnake("a", "red", Cell{X: 5, Y: 5})
	s.Advance(Cell{X: 5, Y: 4}, true)
	if s.Len() != InitialBodyLength+1 {
		t.Errorf("Len = %d, want %d", s.Len(), InitialBodyLength+1)
	}
	if !s.Occupies(Cell{X: 5, Y: 7}) {
		t.Error("tail should be retained on growth")
	}
}

func TestOccupies(t *testing.T) {
	s := NewSnake("a", "red", Cell{X: 5, Y: 5})
	if !s.Occupies(Cell{X: 5, Y: 6}) {
		t.Error("Occupies should report body cells")
	}
	if s.Occupies(Cell{X: 6, Y: 5}) {
		t.Error("Occupies should not report free cells")
	}
}

func TestCellWrap(t *testing.T) {
	tests := []struct {
		in   Cell
		want Cell
	}{
		{Cell{X: 20, Y: 5}, Cell{X: 0, Y: 5}},
		{Cell{X: -1, Y: 5}, Cell{X: 19, Y: 5}},
		{Cell{X: 5, Y: 20}, Cell{X: 5, Y: 0}},
		{Cell{X: 5, Y: -1}, Cell{X: 5, Y: 19}},
		{Cell{X: 5, Y: 5}, Cell{X: 5, Y: 5}},
	}
	for _, tt := range tests {
		if got := tt.in.Wrap(20); got != tt.want {
			t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
