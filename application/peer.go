package application

import (
	"context"
	"errors"
	"log/slog"

	"entwine/domain"
)

// ErrConnectionLost はゲーム中にチャネルが失われた場合に返されるエラーです。
// 再接続は行いません。
var ErrConnectionLost = errors.New("connection to peer lost")

const connectionLostText = "Connection lost"

// exchangeNames は自分の表示名を送り、相手の表示名を受信するまで待ちます。
// 双方の名前が揃うまでセッションは進行しません。
func exchangeNames(ctx context.Context, session *domain.Session, endpoint *domain.Endpoint) error {
	if err := session.BeginNameExchange(); err != nil {
		return err
	}
	if err := endpoint.Send(domain.EncodeName(session.LocalName)); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-endpoint.Done():
			return ErrConnectionLost
		case env := <-endpoint.Inbound():
			if env.Type != domain.MessageTypeName {
				// 名前交換前のフレームは無視する
				continue
			}
			payload, err := domain.ParseNamePayload(env.Data)
			if err != nil {
				slog.WarnContext(ctx, "malformed name payload", "err", err)
				continue
			}
			session.SetRemoteName(payload.Name)
			return session.BeginPlay()
		}
	}
}

func outcomeText(o Outcome, remoteName string) string {
	switch o {
	case OutcomeWin:
		return "You won!"
	case OutcomeLoss:
		return remoteName + " won!"
	case OutcomeMutualLoss:
		return "Nobody won..."
	default:
		return ""
	}
}
