package domain

// World はゲーム全体の状態です。盤面は Side×Side のトーラスです。
// シミュレーションオーナーのプロセスだけが所有し、フォロワーは
// スナップショットから再構成した読み取り専用の射影のみを持ちます。
// スネークはスロット順ではなく名前付きフィールドで保持します。
// ワイヤ上のスロット順 (index 0 = owner, 1 = remote) は Snakes が定めます。
type World struct {
	Side   int
	Owner  *Snake // 認可シミュレーションを実行するピアのスネーク
	Remote *Snake
	Foods  FoodSet
}

func NewWorld(side int, owner, remote *Snake) *World {
	return &World{
		Side:   side,
		Owner:  owner,
		Remote: remote,
		Foods:  NewFoodSet(),
	}
}

// Snakes は生存しているスネークをオーナー先頭の順で返します。
func (w *World) Snakes() []*Snake {
	snakes := make([]*Snake, 0, 2)
	if w.Owner != nil {
		snakes = append(snakes, w.Owner)
	}
	if w.Remote != nil {
		snakes = append(snakes, w.Remote)
	}
	return snakes
}

// AliveCount は盤面に残っているスネークの数を返します。
func (w *World) AliveCount() int {
	return len(w.Snakes())
}

// Occupied はいずれかのスネークの体節がセルを占有しているかを返します。
func (w *World) Occupied(c Cell) bool {
	for _, s := range w.Snakes() {
		if s.Occupies(c) {
			return true
		}
	}
	return false
}

// Remove は該当IDのスネークを盤面から取り除きます。
func (w *World) Remove(id string) {
	if w.Owner != nil && w.Owner.ID == id {
		w.Owner = nil
	}
	if w.Remote != nil && w.Remote.ID == id {
		w.Remote = nil
	}
}
