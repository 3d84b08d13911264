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

// scaddoc generates Markdown documentation
// from the structured comments in an OpenSCAD library file,
// optionally rendering reference images
// for the file's figures and examples.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"zombiezen.com/go/scaddoc"
	"zombiezen.com/go/scaddoc/markdown"
	"zombiezen.com/go/scaddoc/render"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.InfoLevel)

	err := newRootCommand(&log).ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	log.Error().Msg(err.Error())
	var parseErr *scaddoc.ParseError
	if errors.As(err, &parseErr) {
		os.Exit(2)
	}
	os.Exit(1)
}

func newRootCommand(log *zerolog.Logger) *cobra.Command {
	var (
		outFile      string
		imgRoot      string
		genImages    bool
		testOnly     bool
		keepScripts  bool
		commentsOnly bool
		force        bool
		verbose      bool
	)
	cmd := &cobra.Command{
		Use:           "scaddoc [flags] infile",
		Short:         "Generate Markdown documentation from OpenSCAD library comments",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				*log = log.Level(zerolog.DebugLevel)
			}
			if imgRoot != "" && !strings.HasSuffix(imgRoot, "/") {
				imgRoot += "/"
			}

			inFile := args[0]
			prefix := ""
			if commentsOnly {
				prefix = "// "
			}
			f, err := os.Open(inFile)
			if err != nil {
				return err
			}
			lib, err := scaddoc.Parse(f, prefix)
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", inFile, err)
			}

			session := render.NewSession(render.Options{
				ImgRoot:     imgRoot,
				Force:       force,
				TestOnly:    testOnly,
				KeepScripts: keepScripts,
				Log:         *log,
			})
			renderer := &markdown.Renderer{
				FileRoot: strings.TrimSuffix(filepath.Base(inFile), filepath.Ext(inFile)),
				ImgRoot:  imgRoot,
				Images:   session,
			}

			out := os.Stdout
			if outFile != "" {
				out, err = os.Create(outFile)
				if err != nil {
					return err
				}
			}
			if err := renderer.Render(out, lib); err != nil {
				return err
			}
			if outFile != "" {
				if err := out.Close(); err != nil {
					return err
				}
			}

			if genImages || testOnly {
				return session.Process(cmd.Context())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "outfile", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVarP(&genImages, "images", "i", false, "generate images for figures and examples with OpenSCAD")
	cmd.Flags().StringVarP(&imgRoot, "imgroot", "I", "", "directory to put generated images in")
	cmd.Flags().BoolVarP(&testOnly, "test-only", "t", false, "execute example scripts without generating images")
	cmd.Flags().BoolVarP(&keepScripts, "keep-scripts", "k", false, "keep the temporary OpenSCAD scripts")
	cmd.Flags().BoolVarP(&commentsOnly, "comments-only", "c", false, "only process lines that start with // comments")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "regenerate images even when the code is unchanged")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	return cmd
}
