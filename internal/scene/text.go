/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"gocanvas/internal/geom"
)

// DefaultFontSize is the pixel size of basicfont.Face7x13.
const DefaultFontSize = 13

// MeasureText returns the box a block of text occupies at fontSize, measured
// with the fixed 7x13 face and scaled linearly. Lines are split on '\n'.
func MeasureText(text string, fontSize float64) geom.Size {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Face: face}
	lines := strings.Split(text, "\n")
	widest := 0
	for _, l := range lines {
		if w := d.MeasureString(l).Round(); w > widest {
			widest = w
		}
	}
	lineH := face.Metrics().Height.Round()
	k := fontSize / DefaultFontSize
	return geom.Size{Width: float64(widest) * k, Height: float64(lineH*len(lines)) * k}
}

// FitText sets the size of a text object that has none.
func FitText(o Object) Object {
	if o.Kind != KindText || (o.Transform.Size.Width > 0 && o.Transform.Size.Height > 0) {
		return o
	}
	o.Transform.Size = MeasureText(o.Text, o.Style.FontSize)
	return o
}
