/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package server

import (
	"context"
	"time"

	"github.com/coder/websocket"

	"gocanvas/internal/editor"
	applog "gocanvas/internal/log"
	"gocanvas/internal/wire"
)

// session is one websocket connection bound to its own editor.
type session struct {
	id    string
	conn  *websocket.Conn
	ed    *editor.Editor
	disp  *wire.Dispatcher
	send  chan []byte
	unsub func()
}

func newSession(id string, conn *websocket.Conn, ed *editor.Editor) *session {
	s := &session{
		id:   id,
		conn: conn,
		ed:   ed,
		disp: wire.NewDispatcher(ed),
		send: make(chan []byte, sendBuffer),
	}
	s.unsub = wire.Forward(ed.Bus(), s.enqueue)
	return s
}

// enqueue never blocks; a slow client loses notifications rather than
// stalling the editor.
func (s *session) enqueue(data []byte) {
	select {
	case s.send <- data:
	default:
		applog.WithComponent("server").Warn("session send buffer full, dropping message", "session", s.id)
	}
}

func (s *session) close() {
	s.unsub()
	s.ed.Close()
	s.conn.Close(websocket.StatusNormalClosure, "")
}

func (s *session) readPump(ctx context.Context) {
	l := applog.WithComponent("server")
	s.conn.SetReadLimit(maxMsgSize)
	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status != websocket.StatusNormalClosure && status != websocket.StatusGoingAway {
				l.DebugContext(ctx, "read error", "err", err)
			}
			return
		}
		out, err := s.disp.Handle(data)
		if err != nil {
			l.ErrorContext(ctx, "encode reply", "err", err)
			continue
		}
		s.enqueue(out)
	}
}

func (s *session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	l := applog.WithComponent("server")
	for {
		select {
		case msg := <-s.send:
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Write(writeCtx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				l.DebugContext(ctx, "write error", "err", err)
				return
			}
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
