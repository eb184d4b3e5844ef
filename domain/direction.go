package domain

// Direction は単位方向ベクトルです。上下左右の4方向のみを取ります。
type Direction struct {
	DX int
	DY int
}

var (
	DirUp    = Direction{DX: 0, DY: -1}
	DirDown  = Direction{DX: 0, DY: 1}
	DirLeft  = Direction{DX: -1, DY: 0}
	DirRight = Direction{DX: 1, DY: 0}
)

// Opposite は正反対の方向を返します。
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// IsOpposite は other が正反対の方向かどうかを返します。
func (d Direction) IsOpposite(other Direction) bool {
	return d == other.Opposite()
}

// Valid は4方向のいずれかであるかを返します。
func (d Direction) Valid() bool {
	switch d {
	case DirUp, DirDown, DirLeft, DirRight:
		return true
	}
	return false
}
