package room

import (
	"lightcycle/game"
	"lightcycle/protocol"
)

// remoteViewer turns draw calls into a protocol.Frame and ships it over a
// Conn once per tick.
type remoteViewer struct {
	conn   Conn
	format protocol.Format
	ops    []protocol.DrawOp
}

func NewRemoteViewer(conn Conn, format protocol.Format) Viewer {
	return &remoteViewer{conn: conn, format: format}
}

func (v *remoteViewer) Welcome(res JoinResult) error {
	b, err := protocol.EncodeAs(v.format, protocol.MsgWelcome, protocol.Welcome{
		Session:  res.Code,
		MatchID:  res.MatchID,
		TickHz:   res.TickHz,
		CellSize: res.CellSize,
		Host:     res.Host,
	})
	if err != nil {
		return err
	}
	return v.conn.Send(b)
}

func (v *remoteViewer) Clear() {
	v.ops = append(v.ops[:0], protocol.DrawOp{Op: protocol.OpClear})
}

func (v *remoteViewer) DrawPolyline(points []game.Point, style game.Style) {
	pts := make([]protocol.Point, len(points))
	for i, p := range points {
		pts[i] = protocol.Point{X: p.X, Y: p.Y}
	}
	v.ops = append(v.ops, protocol.DrawOp{
		Op:     protocol.OpPolyline,
		Points: pts,
		Color:  style.Color,
		Width:  style.Width,
	})
}

func (v *remoteViewer) DrawText(text string, at game.Point, style game.Style) {
	v.ops = append(v.ops, protocol.DrawOp{
		Op:    protocol.OpText,
		Text:  text,
		At:    &protocol.Point{X: at.X, Y: at.Y},
		Color: style.Color,
		Width: style.Width,
		Align: style.Align,
	})
}

func (v *remoteViewer) Flush(info FrameInfo) error {
	b, err := protocol.EncodeAs(v.format, protocol.MsgFrame, protocol.Frame{
		Tick:    info.Tick,
		MatchID: info.MatchID,
		Phase:   info.Phase.String(),
		Winner:  info.Winner,
		Ops:     v.ops,
	})
	v.ops = v.ops[:0]
	if err != nil {
		return err
	}
	return v.conn.Send(b)
}

func (v *remoteViewer) Close() error {
	return v.conn.Close()
}
