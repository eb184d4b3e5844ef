package application

import "time"

// LatencyEstimator はgame/ack-gameの往復時間から片道遅延を推定します。
// 直近の往復のみを採用します。
type LatencyEstimator struct {
	sentAt   time.Time
	estimate time.Duration
}

// MarkSent はスナップショット送信時刻を記録します。
func (l *LatencyEstimator) MarkSent(now time.Time) {
	l.sentAt = now
}

// MarkAck はack受信時刻から片道遅延の推定値を更新します。
// 対応する送信が記録されていない場合は何もしません。
func (l *LatencyEstimator) MarkAck(now time.Time) {
	if l.sentAt.IsZero() {
		return
	}
	l.estimate = now.Sub(l.sentAt) / 2
}

// Estimate は現在の片道遅延の推定値を返します。
func (l *LatencyEstimator) Estimate() time.Duration {
	return l.estimate
}
