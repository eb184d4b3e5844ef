package application

import "entwine/domain"

// 矢印キー名から方向ベクトルへの対応表。その他のキーは無視されます。
var keyDirections = map[string]domain.Direction{
	"ArrowUp":    domain.DirUp,
	"ArrowDown":  domain.DirDown,
	"ArrowLeft":  domain.DirLeft,
	"ArrowRight": domain.DirRight,
}

// DirectionForKey はキー名を方向ベクトルに変換します。
func DirectionForKey(key string) (domain.Direction, bool) {
	d, ok := keyDirections[key]
	return d, ok
}
