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
	"crypto/sha256"
	"database/sql"
	"errors"
	"fmt"
	"io"

	_ "modernc.org/sqlite" // database/sql driver
	"zombiezen.com/go/scaddoc/markdown"
)

// hashCache is the persistent change cache:
// a sqlite table mapping (library file, image file)
// to the content hash of the last successful render.
type hashCache struct {
	db *sql.DB
}

func openHashCache(path string) (*hashCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open hash cache %s: %w", path, err)
	}
	const schema = `CREATE TABLE IF NOT EXISTS render_hashes (
		libfile TEXT NOT NULL,
		imgfile TEXT NOT NULL,
		hash BLOB NOT NULL,
		PRIMARY KEY (libfile, imgfile)
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("open hash cache %s: %w", path, err)
	}
	return &hashCache{db: db}, nil
}

// get returns the stored hash for the given key,
// or nil if the key has never been rendered.
func (c *hashCache) get(libFile, imgFile string) ([]byte, error) {
	var hash []byte
	err := c.db.QueryRow(
		`SELECT hash FROM render_hashes WHERE libfile = ? AND imgfile = ?`,
		libFile, imgFile,
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("hash cache get %s/%s: %w", libFile, imgFile, err)
	}
	return hash, nil
}

func (c *hashCache) put(libFile, imgFile string, hash []byte) error {
	_, err := c.db.Exec(
		`INSERT INTO render_hashes (libfile, imgfile, hash) VALUES (?, ?, ?)
		ON CONFLICT (libfile, imgfile) DO UPDATE SET hash = excluded.hash`,
		libFile, imgFile, hash,
	)
	if err != nil {
		return fmt.Errorf("hash cache put %s/%s: %w", libFile, imgFile, err)
	}
	return nil
}

func (c *hashCache) Close() error {
	return c.db.Close()
}

// requestHash fingerprints a request:
// SHA-256 over the render type tag followed by every code line.
func requestHash(req markdown.Request) []byte {
	h := sha256.New()
	io.WriteString(h, req.Type)
	for _, line := range req.Code {
		io.WriteString(h, line)
	}
	return h.Sum(nil)
}
