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
	"github.com/sijohans/binson-go/fingerprint"
)

func fingerprintFiles(logger *log.Logger, cfg config, files []string) {
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
		fp, err := fingerprint.Of(&p, cfg.HashKey0, cfg.HashKey1)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
			failed++
			continue
		}
		fmt.Printf("%016x  %s\n", fp, path)
		logger.Printf("%s: fingerprinted", path)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
