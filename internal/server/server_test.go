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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"gocanvas/internal/editor"
	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
	"gocanvas/internal/wire"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(Options{
		Editor: editor.DefaultOptions(),
		NewDocument: func() scene.Document {
			st := scene.NewStore()
			_ = st.Add(scene.Object{ID: "x", Kind: scene.KindRect, Transform: geom.Snapshot{Position: geom.Pt(10, 10), Size: geom.Sz(100, 50)}})
			return st
		},
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("body: %v", body)
	}
}

// readUntil reads envelopes until one of type typ with sequence seq arrives.
func readUntil(ctx context.Context, t *testing.T, c *websocket.Conn, typ string, seq int64) wire.Message {
	t.Helper()
	for {
		_, data, err := c.Read(ctx)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var m wire.Message
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if m.Type == typ && m.Seq == seq {
			return m
		}
	}
}

func TestSession_DragAndUndo(t *testing.T) {
	ts := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close(websocket.StatusNormalClosure, "")

	send := func(s string) {
		if err := c.Write(ctx, websocket.MessageText, []byte(s)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	send(`{"type":"pointer.down","seq":1,"payload":{"x":20,"y":20}}`)
	readUntil(ctx, t, c, wire.TypeResult, 1)
	send(`{"type":"pointer.up","seq":2,"payload":{"x":50,"y":40}}`)
	m := readUntil(ctx, t, c, wire.TypeResult, 2)
	var res wire.Result
	if err := json.Unmarshal(m.Payload, &res); err != nil {
		t.Fatalf("result: %v", err)
	}
	if !strings.HasPrefix(res.Command, "Move") {
		t.Fatalf("expected a move, got %+v", res)
	}
	send(`{"type":"history.undo","seq":3}`)
	m = readUntil(ctx, t, c, wire.TypeResult, 3)
	_ = json.Unmarshal(m.Payload, &res)
	if !res.OK {
		t.Fatalf("undo failed")
	}
	send(`{"type":"bogus","seq":4}`)
	readUntil(ctx, t, c, wire.TypeError, 4)
}
