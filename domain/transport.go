package domain

import "context"

//go:generate go tool mockgen -destination=./mocks/transport_mock.go -package=mocks . Transport

// Transport は確立済みチャネル上の物理的な送受信を表します。
// 送信順どおりの信頼性ある配送を前提とします。この保証が失われた場合の
// 挙動は未定義です。
type Transport interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close(code int32, reason string) error
}

// Link は接続確立コラボレータが生成する縮約された契約です。
// 開いたチャネル、自ピアの表示名、認可シミュレーションを担当するかの
// フラグのみを提供し、接続層の詳細 (ICE/SDPなど) は公開しません。
type Link struct {
	Transport Transport
	LocalName string
	Owner     bool
}
