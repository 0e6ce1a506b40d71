/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */


package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"circlemenu/internal/anim"
	"circlemenu/internal/circlemenu"
)

// SequenceOptions controls ExportFrames.
//   - Total: how long to sample; the frame at Total is included
//   - Every: sampling step, one display frame when zero
//   - Pattern: file name with one %d verb, "frame-%04d.png" when empty
type SequenceOptions struct {
	Frame   FrameOptions
	Total   time.Duration
	Every   time.Duration
	Pattern string
}

// ExportFrames renders the menu, then repeatedly advances clk by Every and
// renders again until Total has elapsed. Relative outDir values are used as
// given. It returns the written paths in order.
func ExportFrames(outDir string, m *circlemenu.Menu, clk *anim.ManualClock, opt SequenceOptions) ([]string, error) {
	if m == nil || clk == nil {
		return nil, fmt.Errorf("menu and clock are required")
	}
	every := opt.Every
	if every <= 0 {
		every = anim.FrameInterval
	}
	pattern := opt.Pattern
	if pattern == "" {
		pattern = "frame-%04d.png"
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure out dir: %w", err)
	}
	var paths []string
	var elapsed time.Duration
	for i := 0; ; i++ {
		p := filepath.Join(outDir, fmt.Sprintf(pattern, i))
		if err := ExportFramePNG(p, m, opt.Frame); err != nil {
			return paths, fmt.Errorf("frame %d: %w", i, err)
		}
		paths = append(paths, p)
		if elapsed >= opt.Total {
			return paths, nil
		}
		step := min(every, opt.Total-elapsed)
		anim.Run(m.Timeline(), clk, step)
		elapsed += step
	}
}
