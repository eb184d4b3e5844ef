package adapterws

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/coder/websocket"

	"entwine/domain"
)

// Host は addr で待ち受け、最初のピアが接続するまでブロックします。
// 待ち受け側が認可シミュレーションのオーナーになります。
// ペアリング完了後は追加の接続を受け付けません。
func Host(ctx context.Context, addr, localName string) (*domain.Link, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	type result struct {
		conn *websocket.Conn
		err  error
	}
	resCh := make(chan result, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // ローカル対戦用: Originチェックをスキップ
		})
		select {
		case resCh <- result{conn: conn, err: err}:
		default:
			// 3人目以降のピアは受け付けない
			if err == nil {
				_ = conn.Close(websocket.StatusPolicyViolation, "game is full")
			}
		}
	})
	server := &http.Server{Handler: mux}

	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case resCh <- result{err: err}:
			default:
			}
		}
	}()

	select {
	case <-ctx.Done():
		_ = server.Close()
		return nil, ctx.Err()
	case res := <-resCh:
		// ハイジャック済みのWebSocket接続はCloseの影響を受けない
		_ = server.Close()
		if res.err != nil {
			return nil, fmt.Errorf("accept peer: %w", res.err)
		}
		return &domain.Link{
			Transport: NewTransportFrom(res.conn),
			LocalName: localName,
			Owner:     true,
		}, nil
	}
}

// Dial はホストに接続します。接続側はフォロワーになります。
func Dial(ctx context.Context, url, localName string) (*domain.Link, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return &domain.Link{
		Transport: NewTransportFrom(conn),
		LocalName: localName,
		Owner:     false,
	}, nil
}
