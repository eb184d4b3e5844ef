package application

import "entwine/domain"

const (
	backgroundColor = "black"
	foodColor       = "white"
)

// Renderer は既知の最新の盤面をSurfaceへ描き直します。
// セルの大きさは描画面の幅をsideで割った値です。
type Renderer struct {
	surface domain.Surface
}

func NewRenderer(surface domain.Surface) *Renderer {
	return &Renderer{surface: surface}
}

// Draw は盤面全体を描き直します。スネークは自色の塗りつぶし、
// エサは輪郭で描きます。
func (r *Renderer) Draw(w *domain.World) {
	if w == nil {
		return
	}
	width, _ := r.surface.Bounds()
	cell := width / w.Side
	if cell <= 0 {
		cell = 1
	}
	r.surface.FillRect(0, 0, w.Side*cell, w.Side*cell, backgroundColor)
	for _, s := range w.Snakes() {
		for _, b := range s.Body {
			r.surface.FillRect(b.X*cell, b.Y*cell, cell, cell, s.Color)
		}
	}
	for _, f := range w.Foods.Cells() {
		r.surface.StrokeRect(f.X*cell, f.Y*cell, cell, cell, foodColor)
	}
	r.surface.Flush()
}

// Notify は通知を表示し、確認されるまでブロックします。
func (r *Renderer) Notify(text string) {
	r.surface.Notify(text)
}
