// Copyright 2024 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package render generates reference images for documentation figures
// and examples by invoking the OpenSCAD binary,
// comparing each new render against the previously committed image,
// and skipping unchanged renders through a persistent content-hash cache.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"zombiezen.com/go/scaddoc/markdown"
)

// DefaultCachePath is the default location of the change cache database.
const DefaultCachePath = "examples_hashes.db"

// Options configure a render [Session].
type Options struct {
	// ImgRoot is the directory receiving generated images.
	// It also prefixes temporary frame files.
	ImgRoot string
	// Force re-renders images even when their content hash is unchanged.
	Force bool
	// TestOnly executes every script without producing images.
	TestOnly bool
	// KeepScripts leaves the temporary .scad scripts behind.
	KeepScripts bool
	// CachePath locates the sqlite change cache.
	// Empty means DefaultCachePath.
	CachePath string
	// Bin names the OpenSCAD binary. Empty means "openscad".
	Bin string
	// Log receives progress and diagnostics.
	Log zerolog.Logger
}

// A Session owns the queue of pending image requests for one run.
// It is created once by the top-level driver
// and handed to the markdown renderer,
// which fills it while emitting image references.
type Session struct {
	opts     Options
	requests []markdown.Request
}

// NewSession returns an empty session with the given options.
func NewSession(opts Options) *Session {
	if opts.ImgRoot != "" && !strings.HasSuffix(opts.ImgRoot, "/") {
		opts.ImgRoot += "/"
	}
	if opts.CachePath == "" {
		opts.CachePath = DefaultCachePath
	}
	if opts.Bin == "" {
		opts.Bin = "openscad"
	}
	return &Session{opts: opts}
}

// Add queues a request.
// It implements [markdown.Queue].
func (s *Session) Add(req markdown.Request) {
	s.requests = append(s.requests, req)
}

// Requests returns the queued requests in arrival order.
func (s *Session) Requests() []markdown.Request {
	return s.requests
}

// Process renders every queued request in order.
// Content hashes of this run's renders persist
// only once every request has succeeded,
// so a failed run re-renders everything it touched.
func (s *Session) Process(ctx context.Context) error {
	cache, err := openHashCache(s.opts.CachePath)
	if err != nil {
		return err
	}
	defer cache.Close()

	type cacheKey struct{ libFile, imgFile string }
	staged := make(map[cacheKey][]byte)
	for _, req := range s.requests {
		if err := ctx.Err(); err != nil {
			return err
		}
		hash, err := s.process(ctx, cache, req)
		if err != nil {
			return err
		}
		if hash != nil {
			staged[cacheKey{req.LibFile, req.ImgFile}] = hash
		}
	}
	for key, hash := range staged {
		if err := cache.put(key.libFile, key.imgFile, hash); err != nil {
			return err
		}
	}
	return nil
}

// process renders one request.
// It returns the request's content hash when a hash should be recorded,
// or nil when the request was skipped or ran in test-only mode.
func (s *Session) process(ctx context.Context, cache *hashCache, req markdown.Request) ([]byte, error) {
	t := ParseType(req.Type, req.Code)
	if t.NoRender {
		return nil, nil
	}
	log := s.opts.Log.With().Str("libfile", req.LibFile).Str("image", req.ImgFile).Logger()

	targImg := s.opts.ImgRoot + req.ImgFile
	// Restore the previously committed image, if git tracks one.
	gitCheckout(ctx, targImg)

	hash := requestHash(req)
	cached, err := cache.get(req.LibFile, req.ImgFile)
	if err != nil {
		return nil, err
	}
	if bytes.Equal(cached, hash) && !s.opts.Force {
		log.Debug().Msg("unchanged, skipping render")
		return nil, nil
	}
	log.Info().Msg("rendering")

	scriptFile := tmpScriptName(req.ImgFile)
	script := strings.Join(req.Code, "\n") + "\n"
	if err := os.WriteFile(scriptFile, []byte(script), 0o666); err != nil {
		return nil, fmt.Errorf("write render script: %w", err)
	}
	if !s.opts.KeepScripts {
		defer os.Remove(scriptFile)
	}

	run := runner{bin: s.opts.Bin, testOnly: s.opts.TestOnly}
	var frames []string
	if t.Spin && !s.opts.TestOnly {
		for ang := 0; ang < 360; ang += 10 {
			frame := fmt.Sprintf("%stmp_%s_%d.png", s.opts.ImgRoot, strings.ReplaceAll(req.ImgFile, ".", "_"), ang)
			arad := float64(ang) * math.Pi / 180
			z := 500 * math.Sin(arad)
			if t.Flat {
				z = 500
			}
			eye := fmt.Sprintf("%g,%g,%g", 500*math.Cos(arad), 500*math.Sin(arad), z)
			if err := run.render(ctx, req.LibFile, scriptFile, frame, t, eye); err != nil {
				return nil, err
			}
			frames = append(frames, frame)
		}
	} else {
		frame := s.opts.ImgRoot + "tmp_" + req.ImgFile
		eye := ""
		if t.TwoD {
			eye = "0,0,500"
		}
		if err := run.render(ctx, req.LibFile, scriptFile, frame, t, eye); err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
	if s.opts.TestOnly {
		return nil, nil
	}

	newImg := s.opts.ImgRoot + "_new_" + req.ImgFile
	if len(frames) == 1 {
		err = resizeFile(frames[0], newImg, t.Width, t.Height)
	} else {
		err = writeAnimatedGIF(newImg, frames, t.Width, t.Height)
	}
	for _, frame := range frames {
		os.Remove(frame)
	}
	if err != nil {
		return nil, err
	}

	switch _, statErr := os.Stat(targImg); {
	case errors.Is(statErr, fs.ErrNotExist):
		log.Info().Msg("new image")
		if err := os.Rename(newImg, targImg); err != nil {
			return nil, fmt.Errorf("install image: %w", err)
		}
	case statErr != nil:
		return nil, fmt.Errorf("compare images: %w", statErr)
	default:
		same, err := sameImageFiles(targImg, newImg)
		if err != nil {
			return nil, err
		}
		if same {
			os.Remove(newImg)
		} else {
			log.Info().Msg("updated image")
			if err := os.Remove(targImg); err != nil {
				return nil, fmt.Errorf("install image: %w", err)
			}
			if err := os.Rename(newImg, targImg); err != nil {
				return nil, fmt.Errorf("install image: %w", err)
			}
		}
	}
	return hash, nil
}

// tmpScriptName derives the temporary script filename for an image,
// with the image name's dots flattened to underscores.
func tmpScriptName(imgFile string) string {
	return "tmp_" + strings.ReplaceAll(imgFile, ".", "_") + ".scad"
}

// gitCheckout restores the committed version of the image, if any.
// Failure is expected when the image is new
// or the tree is not a git checkout.
func gitCheckout(ctx context.Context, path string) {
	cmd := exec.CommandContext(ctx, "git", "checkout", path)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	cmd.Run()
}
