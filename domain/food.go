package domain

// FoodSet は盤面上のエサの集合です。所属のみを持ち、順序は持ちません。
type FoodSet map[Cell]struct{}

func NewFoodSet() FoodSet { return make(FoodSet) }

func (f FoodSet) Add(c Cell)    { f[c] = struct{}{} }
func (f FoodSet) Remove(c Cell) { delete(f, c) }

func (f FoodSet) Contains(c Cell) bool {
	_, ok := f[c]
	return ok
}

func (f FoodSet) Len() int { return len(f) }

// Cells は全エサのスライスを返します。順序は保証されません。
func (f FoodSet) Cells() []Cell {
	cells := make([]Cell, 0, len(f))
	for c := range f {
		cells = append(cells, c)
	}
	return cells
}
