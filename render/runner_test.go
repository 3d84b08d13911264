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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunnerArgs(t *testing.T) {
	tests := []struct {
		name     string
		testOnly bool
		typ      Type
		eye      string
		want     []string
	}{
		{
			name: "Basic",
			typ:  Type{Width: 320, Height: 240},
			want: []string{
				"-o", "out.png",
				"--imgsize=640,480",
				"--hardwarnings",
				"--projection=o",
				"--autocenter",
				"--viewall",
				"--view=axes,scales",
				"script.scad",
			},
		},
		{
			name: "EdgesCameraForceRender",
			typ:  Type{Width: 480, Height: 360, ShowEdges: true, ForceRender: true},
			eye:  "0,0,500",
			want: []string{
				"-o", "out.png",
				"--imgsize=960,720",
				"--hardwarnings",
				"--projection=o",
				"--autocenter",
				"--viewall",
				"--camera", "0,0,500,0,0,0",
				"--view=axes,scales,edges",
				"--render", "",
				"script.scad",
			},
		},
		{
			name:     "TestOnly",
			testOnly: true,
			typ:      Type{Width: 320, Height: 240},
			want: []string{
				"-o", "foo.term",
				"--hardwarnings",
				"script.scad",
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := runner{bin: "openscad", testOnly: test.testOnly}
			require.Equal(t, test.want, r.args("script.scad", "out.png", test.typ, test.eye))
		})
	}
}

func TestDumpFailedScript(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	dumpFailedScript("shapes.scad", "tmp_m_png.scad", "m.png", []byte("cube(1);"))
	got, err := os.ReadFile(filepath.Join(dir, "FAILED.scad"))
	require.NoError(t, err)
	require.Contains(t, string(got), "// shapes.scad: tmp_m_png.scad for m.png")
	require.Contains(t, string(got), "cube(1);\n")
}
