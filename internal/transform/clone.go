/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transform

import "gocanvas/internal/ids"

// CloneState tracks the Alt-drag duplicate protocol within one gesture:
// Idle -> CloneRequested (request published, waiting for the reply) ->
// CloneReady (controller retargeted to the duplicates). CloneCancelled ends
// the protocol for the rest of the gesture without a reply.
type CloneState int

const (
	CloneIdle CloneState = iota
	CloneRequested
	CloneReady
	CloneCancelled
)

func (s CloneState) String() string {
	switch s {
	case CloneRequested:
		return "requested"
	case CloneReady:
		return "ready"
	case CloneCancelled:
		return "cancelled"
	}
	return "idle"
}

type cloneTracker struct {
	state     CloneState
	requestID string
}

// shouldRequest is true the first time the clone modifier is seen.
func (c *cloneTracker) shouldRequest(alt bool) bool { return alt && c.state == CloneIdle }

func (c *cloneTracker) request() string {
	c.state = CloneRequested
	c.requestID = ids.NewRequestID()
	return c.requestID
}

func (c *cloneTracker) pending() bool { return c.state == CloneRequested }

// accept moves Requested -> Ready for a matching reply. An empty reply id
// matches any outstanding request.
func (c *cloneTracker) accept(requestID string) bool {
	if c.state != CloneRequested {
		return false
	}
	if requestID != "" && requestID != c.requestID {
		return false
	}
	c.state = CloneReady
	return true
}

func (c *cloneTracker) cancel() bool {
	if c.state != CloneRequested {
		return false
	}
	c.state = CloneCancelled
	return true
}

func (c *cloneTracker) reset() { *c = cloneTracker{} }
