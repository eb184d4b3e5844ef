package domain

import "github.com/google/uuid"

// Palette はスネークに割り当てる8色の固定パレットです。
var Palette = [8]string{
	"red", "green", "yellow", "blue",
	"orange", "purple", "aqua", "fuchsia",
}

// InitialBodyLength は生成時の体節数です。
const InitialBodyLength = 3

// Snake は1匹のスネークを表します。
// Body は先頭がヘッドの順序付き列で、挿入順に意味があります
// (index 0 = ヘッド、末尾 = しっぽ)。
type Snake struct {
	ID    string
	Color string
	Body  []Cell
}

// NewSnake は head から下方向に3マス積んだスネークを生成します。
// id が空の場合はランダムなIDを割り当てます。
func NewSnake(id, color string, head Cell) *Snake {
	if id == "" {
		id = uuid.NewString()
	}
	body := make([]Cell, 0, InitialBodyLength)
	for i := 0; i < InitialBodyLength; i++ {
		body = append(body, Cell{X: head.X, Y: head.Y + i})
	}
	return &Snake{ID: id, Color: color, Body: body}
}

func (s *Snake) Head() Cell { return s.Body[0] }

// Neck はヘッドの次の体節です。逆走判定に使います。
func (s *Snake) Neck() Cell { return s.Body[1] }

// Heading は先頭2節から導出される現在の進行方向です。
func (s *Snake) Heading() Direction {
	return Direction{DX: s.Body[0].X - s.Body[1].X, DY: s.Body[0].Y - s.Body[1].Y}
}

// CanTurn は dir への転回が首への逆走にならないかを判定します。
// キャッシュではなく現在のBodyに基づいて判定します。
func (s *Snake) CanTurn(dir Direction, side int) bool {
	return s.Head().Add(dir).Wrap(side) != s.Neck()
}

// Advance は新しいヘッドを先頭に追加します。
// grow が false の場合はしっぽを1節落とし、体長を保ちます。
func (s *Snake) Advance(newHead Cell, grow bool) {
	if grow {
		s.Body = append([]Cell{newHead}, s.Body...)
		return
	}
	s.Body = append([]Cell{newHead}, s.Body[:len(s.Body)-1]...)
}

// Occupies はいずれかの体節がセルを占有しているかを返します。
func (s *Snake) Occupies(c Cell) bool {
	for _, b := range s.Body {
		if b == c {
			return true
		}
	}
	return false
}

// Len は体長を返します。
func (s *Snake) Len() int { return len(s.Body) }
