package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"entwine/domain"
)

// frameInterval は描画同期コールバックの周期です。
const frameInterval = time.Second / 60

// DefaultTickInterval は初期のシミュレーションtick間隔です。
// エサの取得ごとに SpeedupFactor が複利で掛かって縮みます。
const DefaultTickInterval = 300 * time.Millisecond

// Owner は認可シミュレーションを実行するピアのゲームループです。
// 毎tick盤面を進めてスナップショットを送信し、自画面の再描画は推定
// 片道遅延の分だけ遅らせて、フォロワーとほぼ同時刻に同じフレームを
// 見せます。
type Owner struct {
	session  *domain.Session
	endpoint *domain.Endpoint
	engine   *Engine
	renderer *Renderer
	keys     <-chan string
	side     int

	world        *domain.World
	tickInterval time.Duration
	latency      LatencyEstimator

	anchor       time.Time
	drewThisTick bool
}

func NewOwner(session *domain.Session, endpoint *domain.Endpoint, engine *Engine, renderer *Renderer, keys <-chan string, side int) *Owner {
	return &Owner{
		session:      session,
		endpoint:     endpoint,
		engine:       engine,
		renderer:     renderer,
		keys:         keys,
		side:         side,
		tickInterval: DefaultTickInterval,
	}
}

// Run は名前交換の完了後にゲームループを回し、決着かチャネル喪失まで
// ブロックします。決着後のループ再開はありません。
func (o *Owner) Run(ctx context.Context) error {
	if err := exchangeNames(ctx, o.session, o.endpoint); err != nil {
		if errors.Is(err, ErrConnectionLost) {
			return o.connectionLost()
		}
		return err
	}

	o.world = o.buildWorld()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	// 最初のフレーム: 初期スナップショットを送って即描画する
	o.sendSnapshot()
	o.renderer.Draw(o.world)
	o.anchor = time.Now()
	o.drewThisTick = true

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-o.endpoint.Done():
			return o.connectionLost()
		case key := <-o.keys:
			o.handleKey(key)
		case env := <-o.endpoint.Inbound():
			o.handleMessage(ctx, env)
		case now := <-ticker.C:
			if done := o.frame(now); done {
				return nil
			}
		}
	}
}

// frame は描画同期コールバック1回分の処理です。決着したtickで
// true を返します。
func (o *Owner) frame(now time.Time) bool {
	elapsed := now.Sub(o.anchor)

	// 推定遅延の分だけ再描画を遅らせ、フォロワーが同じフレームを
	// 見るタイミングに揃える
	if !o.drewThisTick && elapsed >= o.latency.Estimate() {
		o.renderer.Draw(o.world)
		o.drewThisTick = true
	}

	if elapsed < o.tickInterval {
		return false
	}

	effects := o.engine.Advance(o.world, o.session.Direction(), o.session.RemoteDirection())
	for i := 0; i < effects.Speedups; i++ {
		o.tickInterval = time.Duration(float64(o.tickInterval) * SpeedupFactor)
	}
	o.sendSnapshot()
	o.anchor = now
	o.drewThisTick = false

	if effects.Outcome != OutcomeNone {
		o.finish(effects.Outcome)
		return true
	}
	return false
}

// handleKey はローカル入力を処理します。オーナー側は受理した方向を
// 送信せず、次のtickで直接適用します。
func (o *Owner) handleKey(key string) {
	dir, ok := DirectionForKey(key)
	if !ok {
		return
	}
	if o.world == nil || o.world.Owner == nil {
		return
	}
	if !o.world.Owner.CanTurn(dir, o.world.Side) {
		// 首への逆走は無効。状態変更も送信もしない
		return
	}
	o.session.CommitDirection(dir)
}

func (o *Owner) handleMessage(ctx context.Context, env domain.Envelope) {
	switch env.Type {
	case domain.MessageTypeDirection:
		payload, err := domain.ParseDirectionPayload(env.Data)
		if err != nil {
			slog.WarnContext(ctx, "malformed direction payload", "err", err)
			return
		}
		o.session.SetRemoteDirection(payload.Vector())
	case domain.MessageTypeAckGame:
		// 往復時間の半分を片道遅延の推定値として採用する
		o.latency.MarkAck(time.Now())
	case domain.MessageTypeName:
		// 交換済みの名前の再送は無視する
	default:
		slog.DebugContext(ctx, "ignoring unknown message type", "type", env.Type)
	}
}

func (o *Owner) sendSnapshot() {
	if err := o.endpoint.Send(domain.EncodeGame(o.world)); err != nil {
		slog.Warn("failed to queue snapshot", "err", err)
		return
	}
	o.latency.MarkSent(time.Now())
}

// buildWorld は両スネークを初期配置し、エサを補充した盤面を作ります。
func (o *Owner) buildWorld() *domain.World {
	ownerColor, remoteColor := o.engine.PickColors()
	ownerSnake := domain.NewSnake("", ownerColor, domain.Cell{X: o.side / 4, Y: o.side / 2})
	remoteSnake := domain.NewSnake("", remoteColor, domain.Cell{X: o.side * 3 / 4, Y: o.side / 2})
	w := domain.NewWorld(o.side, ownerSnake, remoteSnake)
	o.engine.Replenish(w)
	return w
}

func (o *Owner) finish(outcome Outcome) {
	_ = o.session.Finish()
	o.renderer.Draw(o.world)
	o.renderer.Notify(outcomeText(outcome, o.session.RemoteName))
}

func (o *Owner) connectionLost() error {
	o.renderer.Notify(connectionLostText)
	return ErrConnectionLost
}
