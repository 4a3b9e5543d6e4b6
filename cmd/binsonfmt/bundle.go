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
	"log"
	"os"

	"github.com/sijohans/binson-go"
	"github.com/sijohans/binson-go/bundle"
)

func bundleFiles(logger *log.Logger, cfg config, out string, files []string) {
	w := bundle.NewWriterWithKey(cfg.HashKey0, cfg.HashKey1)
	for _, path := range files {
		raw, err := readFile(path)
		if err != nil {
			exitf("%s: %s\n", path, err)
		}
		var p binson.Parser
		p.Init(raw, len(raw))
		if err := w.Append(&p); err != nil {
			exitf("%s: %s\n", path, err)
		}
		logger.Printf("%s: appended", path)
	}

	f, err := os.Create(out)
	if err != nil {
		exitf("%s: %s\n", out, err)
	}
	defer f.Close()
	if err := w.Flush(f); err != nil {
		exitf("%s: %s\n", out, err)
	}
	fmt.Fprintf(os.Stderr, "%s: wrote %d entries\n", out, w.Count())
}
