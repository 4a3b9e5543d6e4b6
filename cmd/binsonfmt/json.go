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
	"bufio"
	"fmt"
	"log"
	"os"

	"github.com/sijohans/binson-go"
	"github.com/sijohans/binson-go/binsonjson"
)

func jsonFiles(logger *log.Logger, files []string) {
	o := bufio.NewWriter(os.Stdout)
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
		if err := binsonjson.Write(o, &p); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, err)
			failed++
			continue
		}
		o.WriteByte('\n')
		logger.Printf("%s: rendered", path)
	}
	if err := o.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
