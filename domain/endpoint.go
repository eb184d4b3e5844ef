package domain

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrBackpressure は書き込みキューが満杯の場合に返されるエラーです。
	ErrBackpressure = errors.New("write queue is full, apply backpressure")
	// ErrEndpointClosed は終了済みエンドポイントへの送信で返されるエラーです。
	ErrEndpointClosed = errors.New("endpoint is closed")
	// ErrInitializationFailed はエンドポイントの初期化に失敗した場合に返されるエラーです。
	ErrInitializationFailed = errors.New("failed to initialize endpoint")
)

// Endpoint はチャネル1本分の送受信ループを束ねます。
// 受信フレームはパース済みEnvelopeとしてInboundへ届きます。不正な
// フレームは警告ログのみでスキップされ、ループは停止しません。
// 読み書きのエラーはチャネル喪失として扱い、エンドポイントを閉じます。
type Endpoint struct {
	ctx    context.Context
	cancel context.CancelFunc

	transport Transport

	ctrlCh    chan endpointEvent // 制御用チャネル
	writeCh   chan []byte        // 書き込み用チャネル
	inboundCh chan Envelope

	// lifecycle
	closed atomic.Bool
}

func NewEndpoint(transport Transport) (*Endpoint, error) {
	if transport == nil {
		return nil, ErrInitializationFailed
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Endpoint{
		ctx:       ctx,
		cancel:    cancel,
		transport: transport,
		ctrlCh:    make(chan endpointEvent, 16),
		writeCh:   make(chan []byte, 256),
		inboundCh: make(chan Envelope, 256),
	}, nil
}

// Run は読み書きループを起動し、エンドポイントが閉じるまでブロックします。
func (e *Endpoint) Run() error {
	eg, ctx := errgroup.WithContext(e.ctx)
	eg.Go(func() error {
		e.ctrlLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		e.readLoop(ctx)
		return nil
	})
	eg.Go(func() error {
		e.writeLoop(ctx)
		return nil
	})
	return eg.Wait()
}

// Inbound はパース済み受信メッセージのチャネルを返します。
func (e *Endpoint) Inbound() <-chan Envelope { return e.inboundCh }

// Done はエンドポイントの終了を通知するチャネルを返します。
func (e *Endpoint) Done() <-chan struct{} { return e.ctx.Done() }

// Send はフレームを送信キューに積みます。キューが満杯の場合は
// ErrBackpressure を返します。
func (e *Endpoint) Send(data []byte) error {
	if e.closed.Load() {
		return ErrEndpointClosed
	}
	select {
	case e.writeCh <- data:
		return nil
	default:
		return ErrBackpressure
	}
}

// Close はエンドポイントを閉じ、下層のチャネルも閉じます。
func (e *Endpoint) Close() {
	if !e.closed.CompareAndSwap(false, true) {
		return
	}
	e.cancel()
	_ = e.transport.Close(1000, "")
}

func (e *Endpoint) ctrlLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-e.ctrlCh:
			e.handleControlEvent(ctx, ev)
		}
	}
}

func (e *Endpoint) readLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			data, err := e.transport.Read(ctx)
			if err != nil {
				e.sendCtrlEvent(ctx, endpointEvent{kind: evReadError, err: err})
				return
			}
			e.handleData(ctx, data)
		}
	}
}

func (e *Endpoint) writeLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case data := <-e.writeCh:
			if err := e.transport.Write(ctx, data); err != nil {
				e.sendCtrlEvent(ctx, endpointEvent{kind: evWriteError, err: err})
				return
			}
		}
	}
}

func (e *Endpoint) handleData(ctx context.Context, data []byte) {
	env, err := ParseEnvelope(data)
	if err != nil {
		// 不正なフレームはスキップし、ループは継続する
		slog.WarnContext(ctx, "failed to parse frame", "err", err)
		return
	}
	select {
	case e.inboundCh <- *env:
	case <-ctx.Done():
	}
}

// handleControlEvent は制御チャネルからのイベントを処理する唯一の関数です。
func (e *Endpoint) handleControlEvent(ctx context.Context, ev endpointEvent) {
	switch ev.kind {
	case evClose:
		e.Close()
	case evReadError, evWriteError:
		// チャネル喪失として扱う
		slog.DebugContext(ctx, "endpoint i/o error", "err", ev.err)
		e.Close()
	default:
		slog.WarnContext(ctx, "unknown endpoint event kind", "kind", ev.kind)
	}
}

func (e *Endpoint) sendCtrlEvent(ctx context.Context, ev endpointEvent) {
	select {
	case e.ctrlCh <- ev:
	case <-ctx.Done():
	}
}
