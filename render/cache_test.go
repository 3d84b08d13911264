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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"zombiezen.com/go/scaddoc/markdown"
)

func TestHashCache(t *testing.T) {
	cache, err := openHashCache(filepath.Join(t.TempDir(), "hashes.db"))
	require.NoError(t, err)
	defer cache.Close()

	got, err := cache.get("shapes.scad", "m.png")
	require.NoError(t, err)
	require.Nil(t, got, "unknown key should have no hash")

	h1 := []byte{1, 2, 3}
	require.NoError(t, cache.put("shapes.scad", "m.png", h1))
	got, err = cache.get("shapes.scad", "m.png")
	require.NoError(t, err)
	require.Equal(t, h1, got)

	h2 := []byte{4, 5, 6}
	require.NoError(t, cache.put("shapes.scad", "m.png", h2))
	got, err = cache.get("shapes.scad", "m.png")
	require.NoError(t, err)
	require.Equal(t, h2, got, "put should overwrite an existing hash")

	got, err = cache.get("shapes.scad", "other.png")
	require.NoError(t, err)
	require.Nil(t, got, "keys are per image file")
}

func TestHashCachePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashes.db")
	cache, err := openHashCache(path)
	require.NoError(t, err)
	require.NoError(t, cache.put("a.scad", "a.png", []byte{9}))
	require.NoError(t, cache.Close())

	cache, err = openHashCache(path)
	require.NoError(t, err)
	defer cache.Close()
	got, err := cache.get("a.scad", "a.png")
	require.NoError(t, err)
	require.Equal(t, []byte{9}, got)
}

func TestRequestHash(t *testing.T) {
	base := markdown.Request{
		LibFile: "shapes.scad",
		ImgFile: "m.png",
		Code:    []string{"include <shapes.scad>", "m();"},
		Type:    "3D",
	}
	require.Equal(t, requestHash(base), requestHash(base), "hash must be deterministic")

	differentCode := base
	differentCode.Code = []string{"include <shapes.scad>", "m(2);"}
	require.NotEqual(t, requestHash(base), requestHash(differentCode))

	differentType := base
	differentType.Type = "2D"
	require.NotEqual(t, requestHash(base), requestHash(differentType))

	differentTarget := base
	differentTarget.ImgFile = "n.png"
	require.Equal(t, requestHash(base), requestHash(differentTarget),
		"the hash covers only the script content, not the target name")
}
