// Copyright (C) 2026 The binson-go Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/sijohans/binson-go"
)

// readFile slurps a whole file into memory; Binson documents are
// expected to be small enough that streaming isn't worth the
// complexity, matching how cmd/dump reads one buffer at a time rather
// than incrementally parsing partial reads.
func readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func verifyFiles(logger *log.Logger, files []string) {
	failed := 0
	for _, path := range files {
		raw, err := readFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
			failed++
			continue
		}
		var p binson.Parser
		p.Init(raw, len(raw))
		doc, ok := p.RawDocument()
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: invalid: %s\n", path, p.Err())
			failed++
			continue
		}
		if len(doc) != len(raw) {
			logger.Printf("%s: ok (%d of %d bytes consumed, trailing data ignored)", path, len(doc), len(raw))
		} else {
			logger.Printf("%s: ok", path)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}
