package application

import (
	"testing"

	"entwine/domain"
)

func TestDrawCoversWorld(t *testing.T) {
	surface := &fakeSurface{}
	renderer := NewRenderer(surface)

	w := buildWorld(20,
		[]domain.Cell{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}},
		[]domain.Cell{{X: 15, Y: 15}, {X: 15, Y: 16}, {X: 15, Y: 17}},
		domain.Cell{X: 2, Y: 3},
	)
	renderer.Draw(w)

	// 幅40、side 20 なのでセルは2ピクセル
	if len(surface.fills) != 1+6 {
		t.Fatalf("fill calls = %d, want 7", len(surface.fills))
	}
	bg := surface.fills[0]
	if bg != (fillCall{0, 0, 40, 40, "black"}) {
		t.Errorf("background fill = %+v", bg)
	}
	if surface.fills[1] != (fillCall{10, 10, 2, 2, "red"}) {
		t.Errorf("first body fill = %+v", surface.fills[1])
	}
	if len(surface.strokes) != 1 {
		t.Fatalf("stroke calls = %d, want 1", len(surface.strokes))
	}
	if surface.strokes[0] != (fillCall{4, 6, 2, 2, "white"}) {
		t.Errorf("food stroke = %+v", surface.strokes[0])
	}
	if surface.flushes != 1 {
		t.Errorf("flushes = %d, want 1", surface.flushes)
	}
}

func TestDrawNilWorld(t *testing.T) {
	surface := &fakeSurface{}
	renderer := NewRenderer(surface)
	renderer.Draw(nil)
	if surface.flushes != 0 {
		t.Error("nil world should not be drawn")
	}
}

func TestDrawCellNeverBelowOne(t *testing.T) {
	surface := &fakeSurface{}
	renderer := NewRenderer(surface)
	// side が描画面より大きくてもセルは1ピクセルに切り上がる
	w := buildWorld(100,
		[]domain.Cell{{X: 50, Y: 50}, {X: 50, Y: 51}, {X: 50, Y: 52}},
		[]domain.Cell{{X: 70, Y: 70}, {X: 70, Y: 71}, {X: 70, Y: 72}},
	)
	renderer.Draw(w)
	if surface.fills[1] != (fillCall{50, 50, 1, 1, "red"}) {
		t.Errorf("body fill = %+v", surface.fills[1])
	}
}
