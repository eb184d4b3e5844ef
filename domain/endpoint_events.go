package domain

type endpointEventKind uint8

const (
	// unknown
	unknownEvent endpointEventKind = iota

	// I/O
	evReadError
	evWriteError

	// ctrl
	evClose // チャネル終了
)

type endpointEvent struct {
	kind endpointEventKind
	err  error
}
