//go:build js && wasm

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"encoding/json"
	"syscall/js"

	"gocanvas/internal/editor"
	"gocanvas/internal/scene"
	"gocanvas/internal/wire"
)

var (
	store *scene.Store
	disp  *wire.Dispatcher
	ed    *editor.Editor
)

func main() {
	store = scene.NewStore()
	ed = editor.New(store, nil, editor.DefaultOptions())
	disp = wire.NewDispatcher(ed)

	api := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	api.Set("send", js.FuncOf(send))
	api.Set("loadObjects", js.FuncOf(loadObjects))
	api.Set("setViewport", js.FuncOf(setViewport))
	api.Set("subscribe", js.FuncOf(subscribe))

	// --- Queries (frontend ← engine) ---
	api.Set("getObjects", js.FuncOf(getObjects))
	api.Set("getHandles", js.FuncOf(getHandles))
	api.Set("getSelection", js.FuncOf(getSelection))

	js.Global().Set("gocanvasEngine", api)
	js.Global().Set("gocanvasWasmReady", js.ValueOf(true))

	select {}
}

func errorValue(msg string) any {
	return js.ValueOf(map[string]any{"error": msg})
}

func jsonValue(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(string(data))
}

// send takes one wire envelope as a JSON string and returns the reply.
func send(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorValue("missing message JSON")
	}
	out, err := disp.Handle([]byte(args[0].String()))
	if err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(string(out))
}

// subscribe registers a callback receiving every notification as a JSON
// envelope string.
func subscribe(this js.Value, args []js.Value) any {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return errorValue("missing callback")
	}
	cb := args[0]
	wire.Forward(ed.Bus(), func(data []byte) { cb.Invoke(string(data)) })
	return js.ValueOf(map[string]any{"ok": true})
}

func loadObjects(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return errorValue("missing objects JSON")
	}
	var objs []scene.Object
	if err := json.Unmarshal([]byte(args[0].String()), &objs); err != nil {
		return errorValue(err.Error())
	}
	if err := store.Add(objs...); err != nil {
		return errorValue(err.Error())
	}
	return js.ValueOf(map[string]any{"ok": true})
}

func setViewport(this js.Value, args []js.Value) any {
	if len(args) < 3 {
		return errorValue("expected zoom, panX, panY")
	}
	v := store.Viewport()
	v.Zoom = args[0].Float()
	v.Pan.X, v.Pan.Y = args[1].Float(), args[2].Float()
	store.SetViewport(v)
	return nil
}

func getObjects(this js.Value, args []js.Value) any { return jsonValue(store.Objects()) }

func getHandles(this js.Value, args []js.Value) any { return jsonValue(ed.Handles()) }

func getSelection(this js.Value, args []js.Value) any { return jsonValue(ed.Selection()) }
