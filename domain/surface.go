package domain

// Surface は正方形の2D描画面を表します。塗りつぶし矩形と輪郭矩形の
// プリミティブのみを前提とし、描画バックエンドの詳細には依存しません。
// セルの大きさは描画面の幅を盤面のsideで割った値です。
type Surface interface {
	Bounds() (width, height int)
	FillRect(x, y, w, h int, color string)
	StrokeRect(x, y, w, h int, color string)
	Flush()

	// Notify は決着などの通知を表示し、確認されるまでブロックします。
	Notify(text string)
}
