package tcellui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// UI はターミナル上の正方形キャンバスと矢印キー入力を提供します。
// domain.Surface を実装します。
type UI struct {
	screen tcell.Screen
	size   int // 描画領域の1辺のセル数
	keys   chan string
	quit   chan struct{}
}

// New はスクリーンを初期化します。端末が使えない環境では起動時エラー
// として失敗します。
func New() (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	w, h := screen.Size()
	return &UI{
		screen: screen,
		size:   min(w, h),
		keys:   make(chan string, 16),
		quit:   make(chan struct{}),
	}, nil
}

// Keys は受理したキー名のチャネルを返します。
// キー名は "ArrowUp" などの矢印キー名です。
func (u *UI) Keys() <-chan string { return u.keys }

// Quit は終了要求 (Esc / Ctrl-C) の通知チャネルを返します。
func (u *UI) Quit() <-chan struct{} { return u.quit }

// Run は端末イベントループを回し、矢印キーをキー名に変換して転送します。
// その他のキーは無視されます。
func (u *UI) Run(ctx context.Context) {
	go func() {
		<-ctx.Done()
		_ = u.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	for {
		switch ev := u.screen.PollEvent().(type) {
		case *tcell.EventInterrupt:
			return
		case *tcell.EventResize:
			w, h := ev.Size()
			u.size = min(w, h)
			u.screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				close(u.quit)
				return
			case tcell.KeyUp:
				u.emit("ArrowUp")
			case tcell.KeyDown:
				u.emit("ArrowDown")
			case tcell.KeyLeft:
				u.emit("ArrowLeft")
			case tcell.KeyRight:
				u.emit("ArrowRight")
			}
		case nil:
			return
		}
	}
}

func (u *UI) emit(key string) {
	select {
	case u.keys <- key:
	default:
		// 入力が溢れた場合は捨てる
	}
}

func (u *UI) Bounds() (int, int) { return u.size, u.size }

// FillRect はセル矩形を指定色で塗りつぶします。
func (u *UI) FillRect(x, y, w, h int, color string) {
	st := tcell.StyleDefault.Background(tcell.GetColor(color))
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			u.screen.SetContent(x+dx, y+dy, ' ', nil, st)
		}
	}
}

// StrokeRect は矩形の輪郭を指定色で描きます。
func (u *UI) StrokeRect(x, y, w, h int, color string) {
	st := tcell.StyleDefault.Foreground(tcell.GetColor(color))
	for dx := 0; dx < w; dx++ {
		u.screen.SetContent(x+dx, y, tcell.RuneHLine, nil, st)
		u.screen.SetContent(x+dx, y+h-1, tcell.RuneHLine, nil, st)
	}
	for dy := 0; dy < h; dy++ {
		u.screen.SetContent(x, y+dy, tcell.RuneVLine, nil, st)
		u.screen.SetContent(x+w-1, y+dy, tcell.RuneVLine, nil, st)
	}
}

func (u *UI) Flush() { u.screen.Show() }

// Notify は画面中央にメッセージを表示し、キー入力があるまで
// ブロックします。
func (u *UI) Notify(text string) {
	w, h := u.screen.Size()
	st := tcell.StyleDefault.Bold(true)
	x := (w - len(text)) / 2
	if x < 0 {
		x = 0
	}
	for i, r := range text {
		u.screen.SetContent(x+i, h/2, r, nil, st)
	}
	u.screen.Show()
	select {
	case <-u.keys:
	case <-u.quit:
	}
}

// Fini は端末状態を復元します。
func (u *UI) Fini() { u.screen.Fini() }
