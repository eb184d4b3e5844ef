package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// メッセージはすべて {type, data} 形式のJSONテキストフレームで運ばれます。
// フィールド名は相互運用の互換面であり、変更できません。
const (
	MessageTypeName      = "name"
	MessageTypeDirection = "direction"
	MessageTypeGame      = "game"
	MessageTypeAckGame   = "ack-game"
)

var (
	ErrMalformedEnvelope = errors.New("malformed message envelope")
	ErrMalformedPayload  = errors.New("malformed message payload")
	ErrInvalidDirection  = errors.New("direction is not a unit vector")
	ErrInvalidWorld      = errors.New("world snapshot is invalid")
)

// Envelope は全メッセージ共通の外形です。
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ParseEnvelope はテキストフレームからEnvelopeをパースします。
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}
	if env.Type == "" {
		return nil, ErrMalformedEnvelope
	}
	return &env, nil
}

// NamePayload は表示名交換メッセージのペイロードです。
type NamePayload struct {
	Name string `json:"name"`
}

// ParseNamePayload はバイト列からNamePayloadをパースします。
func ParseNamePayload(data []byte) (*NamePayload, error) {
	var p NamePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return &p, nil
}

// EncodeName は表示名交換メッセージをエンコードします。
func EncodeName(name string) []byte {
	return encodeEnvelope(MessageTypeName, NamePayload{Name: name})
}

// DirectionPayload は進行方向の意図を運ぶペイロードです。
// ベクトルは [dx, dy] の2要素配列で表現されます。
type DirectionPayload struct {
	Direction [2]int `json:"direction"`
}

// Vector はペイロードを方向ベクトルに変換します。
func (p *DirectionPayload) Vector() Direction {
	return Direction{DX: p.Direction[0], DY: p.Direction[1]}
}

// ParseDirectionPayload はバイト列からDirectionPayloadをパースします。
// 4方向の単位ベクトル以外は受理しません。
func ParseDirectionPayload(data []byte) (*DirectionPayload, error) {
	var p DirectionPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if !p.Vector().Valid() {
		return nil, ErrInvalidDirection
	}
	return &p, nil
}

// EncodeDirection は方向変更メッセージをエンコードします。
func EncodeDirection(d Direction) []byte {
	return encodeEnvelope(MessageTypeDirection, DirectionPayload{
		Direction: [2]int{d.DX, d.DY},
	})
}

// SnakeWire はワイヤ上のスネーク表現です。
type SnakeWire struct {
	Body  [][2]int `json:"body"`
	Color string   `json:"color"`
}

// WorldWire はワイヤ上の盤面スナップショットです。
// snakes のスロット順は index 0 = owner, index 1 = remote です。
type WorldWire struct {
	Side   int         `json:"side"`
	Snakes []SnakeWire `json:"snakes"`
	Foods  []Cell      `json:"foods"`
}

// GamePayload は盤面スナップショットメッセージのペイロードです。
type GamePayload struct {
	World WorldWire `json:"world"`
}

// ParseGamePayload はバイト列からGamePayloadをパースします。
func ParseGamePayload(data []byte) (*GamePayload, error) {
	var p GamePayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if p.World.Side <= 0 || len(p.World.Snakes) > 2 {
		return nil, ErrInvalidWorld
	}
	for _, s := range p.World.Snakes {
		if len(s.Body) == 0 {
			return nil, ErrInvalidWorld
		}
	}
	return &p, nil
}

// EncodeGame は盤面スナップショットメッセージをエンコードします。
func EncodeGame(w *World) []byte {
	return encodeEnvelope(MessageTypeGame, GamePayload{World: SnapshotWorld(w)})
}

// EncodeAckGame はスナップショット受領確認メッセージをエンコードします。
// データは持ちません。
func EncodeAckGame() []byte {
	return encodeEnvelope(MessageTypeAckGame, nil)
}

// SnapshotWorld はWorldをワイヤ形式に変換します。
// 脱落済みのスネークはスナップショットに含まれません。
func SnapshotWorld(w *World) WorldWire {
	wire := WorldWire{
		Side:  w.Side,
		Foods: w.Foods.Cells(),
	}
	for _, s := range w.Snakes() {
		body := make([][2]int, 0, len(s.Body))
		for _, c := range s.Body {
			body = append(body, [2]int{c.X, c.Y})
		}
		wire.Snakes = append(wire.Snakes, SnakeWire{Body: body, Color: s.Color})
	}
	return wire
}

// Reconstruct はワイヤ形式からフォロワー用の射影を再構成します。
// スロット順のままスネークを割り当てます。
func (ww *WorldWire) Reconstruct() *World {
	w := NewWorld(ww.Side, nil, nil)
	for i, sw := range ww.Snakes {
		body := make([]Cell, 0, len(sw.Body))
		for _, c := range sw.Body {
			body = append(body, Cell{X: c[0], Y: c[1]})
		}
		snake := &Snake{Color: sw.Color, Body: body}
		if i == 0 {
			w.Owner = snake
		} else {
			w.Remote = snake
		}
	}
	for _, f := range ww.Foods {
		w.Foods.Add(f)
	}
	return w
}

func encodeEnvelope(msgType string, payload any) []byte {
	var raw json.RawMessage
	if payload != nil {
		// ペイロードは固定形のためマーシャルは失敗しない
		raw, _ = json.Marshal(payload)
	}
	data, _ := json.Marshal(Envelope{Type: msgType, Data: raw})
	return data
}
