package application

import (
	"math/rand"
	"time"

	"entwine/domain"
)

// SpeedupFactor はエサ1つの取得ごとにtick間隔へ乗じる係数です。
// 取得のたびに複利で効き、下限はありません。
const SpeedupFactor = 0.95

// Outcome はtick終了時の局面評価です。オーナー視点で判定されます。
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeLoss
	OutcomeMutualLoss
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeMutualLoss:
		return "mutual-loss"
	default:
		return "unknown"
	}
}

// TickEffects は1tick分の副作用の要約です。
type TickEffects struct {
	Speedups int           // このtickで取得されたエサの数
	Eaten    []domain.Cell // 取得されたエサのセル
	Removed  []string      // 脱落したスネークのID
	Outcome  Outcome
}

// Engine は盤面を1tickずつ進めるシミュレーションエンジンです。
// エサの再配置以外は入力に対して決定的で、乱数源は注入できます。
type Engine struct {
	rng *rand.Rand
}

// NewEngine はエンジンを生成します。rng が nil の場合は時刻でシードします。
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// Advance は両スネークの意図方向を適用して盤面を1tick進めます。
func (e *Engine) Advance(w *domain.World, ownerDir, remoteDir domain.Direction) TickEffects {
	var effects TickEffects

	type move struct {
		snake *domain.Snake
		dir   domain.Direction
	}
	moves := make([]move, 0, 2)
	if w.Owner != nil {
		moves = append(moves, move{snake: w.Owner, dir: ownerDir})
	}
	if w.Remote != nil {
		moves = append(moves, move{snake: w.Remote, dir: remoteDir})
	}
	before := len(moves)

	// 1. エサ取得判定: ラップ適用前の予定ヘッドで突き合わせる。
	// 複数のスネークが同じtickで別々のエサを取ることもある。
	growers := make(map[*domain.Snake]bool, len(moves))
	for _, m := range moves {
		prospective := m.snake.Head().Add(m.dir)
		if w.Foods.Contains(prospective) {
			w.Foods.Remove(prospective)
			growers[m.snake] = true
			effects.Eaten = append(effects.Eaten, prospective)
			effects.Speedups++
		}
	}

	// 2. 移動: 新しいヘッドを各軸独立に [0, side) へラップして追加する
	for _, m := range moves {
		newHead := m.snake.Head().Add(m.dir).Wrap(w.Side)
		m.snake.Advance(newHead, growers[m.snake])
	}

	// 3. 衝突判定: 移動後の全Bodyをスナップショットしてから判定する。
	// 脱落の反映が後続の判定に影響しないよう、除去は判定完了後に行う。
	bodies := make([][]domain.Cell, len(moves))
	for i, m := range moves {
		bodies[i] = append([]domain.Cell(nil), m.snake.Body...)
	}
	collided := make([]bool, len(moves))
	for i, m := range moves {
		head := m.snake.Head()
		for j, body := range bodies {
			for k, cell := range body {
				if i == j && k == 0 {
					// 自分自身の新しいヘッドとは衝突しない
					continue
				}
				if cell == head {
					collided[i] = true
				}
			}
		}
	}
	for i, m := range moves {
		if collided[i] {
			effects.Removed = append(effects.Removed, m.snake.ID)
			w.Remove(m.snake.ID)
		}
	}

	// 4. 局面評価: スネーク数が減ったtickでのみ、ただ1つの決着を通知する
	if after := w.AliveCount(); after < before {
		switch {
		case after == 0:
			// 相打ちは双方敗北として扱う
			effects.Outcome = OutcomeMutualLoss
		case w.Owner != nil:
			effects.Outcome = OutcomeWin
		default:
			effects.Outcome = OutcomeLoss
		}
	}

	// 5. エサ補充
	e.Replenish(w)

	return effects
}

// Replenish はエサの数がスネークの数を下回らないよう一様乱数で補充します。
// 体節に占有されたセルは引き直します。
func (e *Engine) Replenish(w *domain.World) {
	for w.Foods.Len() < w.AliveCount() {
		w.Foods.Add(e.randomFreeCell(w))
	}
}

func (e *Engine) randomFreeCell(w *domain.World) domain.Cell {
	for {
		c := domain.Cell{X: e.rng.Intn(w.Side), Y: e.rng.Intn(w.Side)}
		if !w.Occupied(c) {
			return c
		}
	}
}

// PickColors はパレットから重複しない2色を選びます。
func (e *Engine) PickColors() (string, string) {
	i := e.rng.Intn(len(domain.Palette))
	j := e.rng.Intn(len(domain.Palette) - 1)
	if j >= i {
		j++
	}
	return domain.Palette[i], domain.Palette[j]
}
