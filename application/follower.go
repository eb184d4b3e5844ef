package application

import (
	"context"
	"errors"
	"log/slog"

	"entwine/domain"
)

// Follower はスナップショットを受信して描画するピアのループです。
// 独自のtickは持たず、gameメッセージ到着のたびに反応的に描画して
// ただちにackを返します。
type Follower struct {
	session  *domain.Session
	endpoint *domain.Endpoint
	renderer *Renderer
	keys     <-chan string

	// 再構成された読み取り専用の射影
	projection *domain.World
	// 最新スナップショット由来の自スネークのBody。入力の逆走判定に使う
	ownBody []domain.Cell
	// 最初のスナップショットのスロット1で割り当てられた自分の色
	ownColor string
}

func NewFollower(session *domain.Session, endpoint *domain.Endpoint, renderer *Renderer, keys <-chan string) *Follower {
	return &Follower{
		session:  session,
		endpoint: endpoint,
		renderer: renderer,
		keys:     keys,
	}
}

// Run は名前交換の完了後に受信ループを回し、決着かチャネル喪失まで
// ブロックします。
func (f *Follower) Run(ctx context.Context) error {
	if err := exchangeNames(ctx, f.session, f.endpoint); err != nil {
		if errors.Is(err, ErrConnectionLost) {
			return f.connectionLost()
		}
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-f.endpoint.Done():
			return f.connectionLost()
		case key := <-f.keys:
			f.handleKey(key)
		case env := <-f.endpoint.Inbound():
			if done := f.handleMessage(ctx, env); done {
				return nil
			}
		}
	}
}

// handleKey はローカル入力を処理します。受理した方向変更1回につき
// directionメッセージをちょうど1通送信します。
func (f *Follower) handleKey(key string) {
	dir, ok := DirectionForKey(key)
	if !ok {
		return
	}
	if f.projection == nil || len(f.ownBody) < 2 {
		return
	}
	head, neck := f.ownBody[0], f.ownBody[1]
	if head.Add(dir).Wrap(f.projection.Side) == neck {
		// 首への逆走は無効。状態変更も送信もしない
		return
	}
	f.session.CommitDirection(dir)
	if err := f.endpoint.Send(domain.EncodeDirection(dir)); err != nil {
		slog.Warn("failed to send direction", "err", err)
	}
}

// handleMessage は受信メッセージを処理します。決着を検知したら
// true を返します。
func (f *Follower) handleMessage(ctx context.Context, env domain.Envelope) bool {
	switch env.Type {
	case domain.MessageTypeGame:
		payload, err := domain.ParseGamePayload(env.Data)
		if err != nil {
			slog.WarnContext(ctx, "malformed game payload", "err", err)
			return false
		}
		f.applySnapshot(&payload.World)
		// 受信後ただちにackを返す。オーナーはこの往復から遅延を測る
		if err := f.endpoint.Send(domain.EncodeAckGame()); err != nil {
			slog.WarnContext(ctx, "failed to send ack", "err", err)
		}
		return f.checkOutcome(&payload.World)
	case domain.MessageTypeName:
		// 交換済みの名前の再送は無視する
		return false
	default:
		slog.DebugContext(ctx, "ignoring unknown message type", "type", env.Type)
		return false
	}
}

// applySnapshot はローカルの射影をスナップショットで丸ごと置き換え、
// 自スネークのBodyの参照コピーを取り直します。
func (f *Follower) applySnapshot(wire *domain.WorldWire) {
	f.projection = wire.Reconstruct()

	// 自分のスネークはスロット1。初回に色を控え、以後は色で特定する
	if f.ownColor == "" && len(wire.Snakes) >= 2 {
		f.ownColor = wire.Snakes[1].Color
	}
	f.ownBody = nil
	for _, s := range f.projection.Snakes() {
		if s.Color == f.ownColor {
			f.ownBody = s.Body
			break
		}
	}

	f.renderer.Draw(f.projection)
}

// checkOutcome はスナップショットから自分視点の決着を導出します。
func (f *Follower) checkOutcome(wire *domain.WorldWire) bool {
	if f.ownColor == "" || len(wire.Snakes) >= 2 {
		return false
	}

	outcome := OutcomeMutualLoss
	if len(wire.Snakes) == 1 {
		if wire.Snakes[0].Color == f.ownColor {
			outcome = OutcomeWin
		} else {
			outcome = OutcomeLoss
		}
	}
	_ = f.session.Finish()
	f.renderer.Notify(outcomeText(outcome, f.session.RemoteName))
	return true
}

func (f *Follower) connectionLost() error {
	f.renderer.Notify(connectionLostText)
	return ErrConnectionLost
}
