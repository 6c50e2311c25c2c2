/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ids generates prefixed, time-sortable identifiers.
package ids

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const (
	PrefixObject  = "obj"
	PrefixCommand = "cmd"
	PrefixRequest = "dup"
	PrefixSession = "sess"
)

func New(prefix string) string {
	return typeid.MustGenerate(prefix).String()
}

func NewObjectID() string  { return New(PrefixObject) }
func NewCommandID() string { return New(PrefixCommand) }
func NewRequestID() string { return New(PrefixRequest) }

// Validate checks that id parses and carries the expected prefix.
func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
