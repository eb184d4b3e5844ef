package domain

// Cell は盤面上の1マスを表す値型です。
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add は方向ベクトルを加算したCellを返します。ラップ処理は行いません。
func (c Cell) Add(d Direction) Cell {
	return Cell{X: c.X + d.DX, Y: c.Y + d.DY}
}

// Wrap は各軸を独立に [0, side) へ折り返します。盤面はトーラスです。
func (c Cell) Wrap(side int) Cell {
	return Cell{
		X: ((c.X % side) + side) % side,
		Y: ((c.Y % side) + side) % side,
	}
}
