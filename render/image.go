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

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"math"
	"os"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// sameImageFiles reports whether two image files are effectively identical.
// GIFs are compared bytewise;
// still images allow small per-pixel rendering noise.
func sameImageFiles(a, b string) (bool, error) {
	if strings.HasSuffix(a, ".gif") {
		da, err := os.ReadFile(a)
		if err != nil {
			return false, fmt.Errorf("compare images: %w", err)
		}
		db, err := os.ReadFile(b)
		if err != nil {
			return false, fmt.Errorf("compare images: %w", err)
		}
		return bytes.Equal(da, db), nil
	}
	ia, err := readImage(a)
	if err != nil {
		return false, err
	}
	ib, err := readImage(b)
	if err != nil {
		return false, err
	}
	return sameImage(ia, ib), nil
}

// sameImage reports whether two images have the same size
// and a root-mean-square channel difference below 2,
// which absorbs antialiasing jitter between renders.
func sameImage(a, b image.Image) bool {
	ba, bb := a.Bounds(), b.Bounds()
	if ba.Dx() != bb.Dx() || ba.Dy() != bb.Dy() {
		return false
	}
	var sum float64
	for y := 0; y < ba.Dy(); y++ {
		for x := 0; x < ba.Dx(); x++ {
			ar, ag, ab2, aa := a.At(ba.Min.X+x, ba.Min.Y+y).RGBA()
			br, bg, bb2, bal := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			for _, d := range [...]int{
				int(ar>>8) - int(br>>8),
				int(ag>>8) - int(bg>>8),
				int(ab2>>8) - int(bb2>>8),
				int(aa>>8) - int(bal>>8),
			} {
				sum += float64(d * d)
			}
		}
	}
	rms := math.Sqrt(sum / float64(ba.Dx()*ba.Dy()))
	return rms < 2
}

// thumbnail scales the image down to fit within the given box,
// preserving its aspect ratio.
// Images already within the box are returned unchanged.
func thumbnail(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	scale := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

// resizeFile writes a thumbnail of the source image to dstPath as PNG.
func resizeFile(srcPath, dstPath string, maxW, maxH int) error {
	src, err := readImage(srcPath)
	if err != nil {
		return err
	}
	return writePNG(dstPath, thumbnail(src, maxW, maxH))
}

// writeAnimatedGIF assembles the turntable frames into a looping GIF,
// 250 ms per frame.
func writeAnimatedGIF(path string, framePaths []string, maxW, maxH int) error {
	anim := &gif.GIF{LoopCount: 0}
	for _, fp := range framePaths {
		frame, err := readImage(fp)
		if err != nil {
			return err
		}
		small := thumbnail(frame, maxW, maxH)
		pal := image.NewPaletted(small.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pal, small.Bounds(), small, image.Point{})
		anim.Image = append(anim.Image, pal)
		anim.Delay = append(anim.Delay, 25)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write animated gif: %w", err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("write animated gif %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write animated gif %s: %w", path, err)
	}
	return nil
}

func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write image %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write image %s: %w", path, err)
	}
	return nil
}
