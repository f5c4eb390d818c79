package tui

import (
	"github.com/gdamore/tcell/v2"

	"lightcycle/room"
)

// KeyName maps a terminal key to the identifier the game's keymaps use.
// Unmapped keys come back empty.
func KeyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "ArrowUp"
	case tcell.KeyDown:
		return "ArrowDown"
	case tcell.KeyLeft:
		return "ArrowLeft"
	case tcell.KeyRight:
		return "ArrowRight"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyRune:
		return string(ev.Rune())
	}
	return ""
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Events turns terminal input into room commands for viewerID. It returns
// when the user quits, the room lets go of the screen, or send reports the
// room is gone.
func (s *Screen) Events(send func(cmd any) bool, viewerID string) {
	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go s.screen.ChannelEvents(events, quit)

	for {
		var ev tcell.Event
		select {
		case <-s.done:
			return
		case ev = <-events:
		}
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			s.screen.Sync()
			if !send(room.Resize{ViewerID: viewerID, Viewport: s.Viewport()}) {
				return
			}
		case *tcell.EventKey:
			if isQuit(ev) {
				return
			}
			name := KeyName(ev)
			if name == "" {
				continue
			}
			if !send(room.Key{ViewerID: viewerID, Key: name}) {
				return
			}
		}
	}
}
