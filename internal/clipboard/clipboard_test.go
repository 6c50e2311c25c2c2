/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package clipboard

import (
	"errors"
	"testing"

	"gocanvas/internal/geom"
	"gocanvas/internal/scene"
)

func TestMemory_CopiesAreDetached(t *testing.T) {
	m := NewMemory()
	if _, ok, _ := m.Read(); ok {
		t.Fatalf("fresh clipboard must be empty")
	}
	objs := []scene.Object{{ID: "a", Kind: scene.KindInk, Points: []geom.Point{{X: 1, Y: 1}}}}
	_ = m.Write(objs)
	objs[0].Points[0] = geom.Pt(9, 9)
	got, ok, err := m.Read()
	if err != nil || !ok || got[0].Points[0] != geom.Pt(1, 1) {
		t.Fatalf("read: %+v ok=%v err=%v", got, ok, err)
	}
	_ = m.Write(nil)
	if _, ok, _ := m.Read(); ok {
		t.Fatalf("writing nil empties the clipboard")
	}
}

func TestDecode(t *testing.T) {
	if _, err := Decode("hello"); !errors.Is(err, ErrForeign) {
		t.Fatalf("plain text should be foreign, got %v", err)
	}
	objs, err := Decode(`{"type":"application/x-gocanvas-objects","objects":[{"id":"a","kind":"rect","transform":{"position":{"x":1,"y":2},"size":{"width":3,"height":4},"rotation":0}}]}`)
	if err != nil || len(objs) != 1 || objs[0].Transform.Size.Height != 4 {
		t.Fatalf("decode: %+v %v", objs, err)
	}
	if _, err := Decode(`{"type":"application/x-gocanvas-objects",`); err == nil || errors.Is(err, ErrForeign) {
		t.Fatalf("truncated payload should be a decode error, got %v", err)
	}
}
