package protocol

// input structs coming in from the client.

type Hello struct {
	V       int     `json:"v" msgpack:"v"`                               // version
	Players int     `json:"players,omitempty" msgpack:"players,omitempty"` // 1 or 2
	Width   float64 `json:"width" msgpack:"width"`
	Height  float64 `json:"height" msgpack:"height"`
	Code    string  `json:"code,omitempty" msgpack:"code,omitempty"` // join an existing session as a spectator
}

type Key struct {
	Key string `json:"key" msgpack:"key"` // KeyboardEvent.key
}

type Restart struct{}

type Resize struct {
	Width  float64 `json:"width" msgpack:"width"`
	Height float64 `json:"height" msgpack:"height"`
}
