package domain

import "errors"

// Phase はピアのセッション状態です。
type Phase uint8

const (
	PhaseAwaitingHandshake Phase = iota
	PhaseNameExchange
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingHandshake:
		return "awaiting-handshake"
	case PhaseNameExchange:
		return "name-exchange"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidPhaseTransition = errors.New("invalid session phase transition")
	ErrNameNotExchanged       = errors.New("remote name not yet exchanged")
)

// Session は1ピア分のゲームセッション状態を保持します。
// ゲームループの単一ゴルーチンのみが触れる前提で、同期プリミティブは
// 持ちません。
type Session struct {
	LocalName  string
	RemoteName string

	phase Phase

	// 確定済みの自スネークの進行方向
	direction Direction
	// オーナー側のみ: 最後に受信したリモートの進行方向
	remoteDirection Direction
}

// NewSession はハンドシェイク待ち状態のセッションを生成します。
// 両スネークは縦積みで生成されるため、初期方向は上です。
func NewSession(localName string) *Session {
	return &Session{
		LocalName:       localName,
		phase:           PhaseAwaitingHandshake,
		direction:       DirUp,
		remoteDirection: DirUp,
	}
}

func (s *Session) Phase() Phase { return s.phase }

// BeginNameExchange はチャネル確立後に名前交換フェーズへ遷移します。
func (s *Session) BeginNameExchange() error {
	if s.phase != PhaseAwaitingHandshake {
		return ErrInvalidPhaseTransition
	}
	s.phase = PhaseNameExchange
	return nil
}

// SetRemoteName は受信した相手の表示名を記録します。
func (s *Session) SetRemoteName(name string) {
	s.RemoteName = name
}

// BeginPlay は双方の名前が揃ってからゲーム中フェーズへ遷移します。
func (s *Session) BeginPlay() error {
	if s.phase != PhaseNameExchange {
		return ErrInvalidPhaseTransition
	}
	if s.RemoteName == "" {
		return ErrNameNotExchanged
	}
	s.phase = PhasePlaying
	return nil
}

// Finish は決着後にゲーム終了フェーズへ遷移します。再開はありません。
func (s *Session) Finish() error {
	if s.phase != PhasePlaying {
		return ErrInvalidPhaseTransition
	}
	s.phase = PhaseGameOver
	return nil
}

func (s *Session) Direction() Direction { return s.direction }

// CommitDirection は受理済みの新しい進行方向を確定します。
// 逆走判定は入力受理側が生きたBodyに基づいて行います。
func (s *Session) CommitDirection(d Direction) {
	s.direction = d
}

func (s *Session) RemoteDirection() Direction { return s.remoteDirection }

// SetRemoteDirection はフォロワーから届いた進行方向の意図を記録します。
// 次のtickで消費されます。
func (s *Session) SetRemoteDirection(d Direction) {
	s.remoteDirection = d
}
