package protocol

const (
	MsgHello   = "hello"
	MsgKey     = "key"
	MsgRestart = "restart"
	MsgResize  = "resize"
	MsgWelcome = "welcome"
	MsgFrame   = "frame"
	MsgError   = "error"
)

const (
	Version       = 1
	SimTickHz     = 60 // one tick per display refresh
	MaxMessageLen = 1 << 16
)

// Envelope is the outer frame of every message. P holds the payload still
// encoded in the envelope's format.
type Envelope struct {
	T string
	P []byte

	format Format
}

func (e Envelope) Format() Format {
	return e.format
}
