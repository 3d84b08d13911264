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
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// runner invokes the OpenSCAD binary, one run per output frame.
type runner struct {
	bin      string
	testOnly bool
}

// render runs the script through OpenSCAD, producing imgFile.
// The image is rendered at twice the target size
// and downscaled later for quality.
// In test-only mode the script is merely executed
// against a throwaway terminal dump.
// A failing script is copied to FAILED.scad for diagnosis.
func (r runner) render(ctx context.Context, libFile, scriptFile, imgFile string, t Type, eye string) error {
	cmd := exec.CommandContext(ctx, r.bin, r.args(scriptFile, imgFile, t, eye)...)
	stderr := new(bytes.Buffer)
	cmd.Stdout = io.Discard
	cmd.Stderr = stderr
	err := cmd.Run()
	if r.testOnly {
		os.Remove("foo.term")
	}
	if err != nil || bytes.Contains(stderr.Bytes(), []byte("ERROR:")) || bytes.Contains(stderr.Bytes(), []byte("TRACE:")) {
		script, _ := os.ReadFile(scriptFile)
		dumpFailedScript(libFile, scriptFile, imgFile, script)
		if err != nil {
			return fmt.Errorf("render %s for %s: %w\n%s", scriptFile, imgFile, err, stderr.Bytes())
		}
		return fmt.Errorf("render %s for %s:\n%s", scriptFile, imgFile, stderr.Bytes())
	}
	return nil
}

// args builds the OpenSCAD command line for one frame.
func (r runner) args(scriptFile, imgFile string, t Type, eye string) []string {
	var args []string
	if r.testOnly {
		args = []string{"-o", "foo.term", "--hardwarnings"}
	} else {
		args = []string{
			"-o", imgFile,
			fmt.Sprintf("--imgsize=%d,%d", t.Width*2, t.Height*2),
			"--hardwarnings",
			"--projection=o",
			"--autocenter",
			"--viewall",
		}
		if eye != "" {
			args = append(args, "--camera", eye+",0,0,0")
		}
		if t.ShowEdges {
			args = append(args, "--view=axes,scales,edges")
		} else {
			args = append(args, "--view=axes,scales")
		}
	}
	if t.ForceRender {
		args = append(args, "--render", "")
	}
	return append(args, scriptFile)
}

// dumpFailedScript leaves the failing script in FAILED.scad
// so it can be rerun by hand.
func dumpFailedScript(libFile, scriptFile, imgFile string, script []byte) {
	const banner = "////////////////////////////////////////////////////\n"
	sb := new(strings.Builder)
	sb.WriteString(banner)
	fmt.Fprintf(sb, "// %s: %s for %s\n", libFile, scriptFile, imgFile)
	sb.WriteString(banner)
	sb.Write(script)
	if !bytes.HasSuffix(script, []byte("\n")) {
		sb.WriteString("\n")
	}
	sb.WriteString(banner)
	os.WriteFile("FAILED.scad", []byte(sb.String()), 0o666)
}
