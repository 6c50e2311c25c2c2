/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package server hosts editing sessions over websockets. Each connection gets
// its own document, editor and history; bus notifications are streamed back
// as wire envelopes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gocanvas/internal/editor"
	applog "gocanvas/internal/log"
	"gocanvas/internal/scene"
	"gocanvas/internal/version"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
	sendBuffer = 256
)

// Options configure a Server.
type Options struct {
	Addr           string
	AllowedOrigins []string
	Editor         editor.Options
	// NewDocument builds the document for a new session; defaults to an
	// empty scene.Store.
	NewDocument func() scene.Document
}

type Server struct {
	opts     Options
	router   *mux.Router
	sessions atomic.Int64
}

func New(opts Options) *Server {
	if opts.NewDocument == nil {
		opts.NewDocument = func() scene.Document { return scene.NewStore() }
	}
	s := &Server{opts: opts, router: mux.NewRouter()}
	s.router.HandleFunc("/health", s.health).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.serveWS)
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Sessions returns the number of open sessions.
func (s *Server) Sessions() int64 { return s.sessions.Load() }

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"version":  version.String(),
		"sessions": s.Sessions(),
	})
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	l := applog.WithComponent("server")
	errCh := make(chan error, 1)
	go func() {
		l.Info("server starting", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	l.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	l := applog.WithComponent("server")
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.opts.AllowedOrigins})
	if err != nil {
		l.Error("websocket accept", "err", err)
		return
	}
	id := uuid.New().String()
	ctx, cancel := context.WithCancel(applog.WithSession(r.Context(), id))
	defer cancel()

	sess := newSession(id, conn, editor.New(s.opts.NewDocument(), nil, s.opts.Editor))
	defer sess.close()

	s.sessions.Add(1)
	defer s.sessions.Add(-1)
	l.InfoContext(ctx, "session opened", "remote", r.RemoteAddr)

	go sess.writePump(ctx)
	sess.readPump(ctx)
	l.InfoContext(ctx, "session closed")
}
