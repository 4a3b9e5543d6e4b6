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

// Command binsonfmt verifies, renders as compact JSON, fingerprints and bundles
// Binson documents from the command line.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/uuid"
)

var (
	dashv      bool
	dashh      bool
	dashconfig string
)

func init() {
	flag.BoolVar(&dashv, "v", false, "verbose logging")
	flag.BoolVar(&dashh, "h", false, "show usage help")
	flag.StringVar(&dashconfig, "config", "", "path to a binsonfmt.yaml config file")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 || dashh {
		fmt.Fprintf(os.Stderr, "usage:\n")
		fmt.Fprintf(os.Stderr, "    %s [-config <file>] verify <file>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        check that each file holds one well-formed Binson document\n")
		fmt.Fprintf(os.Stderr, "    %s [-config <file>] json <file>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        render each document as compact JSON on stdout\n")
		fmt.Fprintf(os.Stderr, "    %s [-config <file>] fingerprint <file>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        print the hex fingerprint of each document\n")
		fmt.Fprintf(os.Stderr, "    %s [-config <file>] bundle <out.bsnz> <file>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        pack several documents into a compressed bundle\n")
		fmt.Fprintf(os.Stderr, "flag usage:\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := loadConfig(dashconfig)
	if err != nil {
		exitf("config: %s\n", err)
	}

	runID := uuid.New()
	logger := log.New(os.Stderr, "", 0)
	if dashv {
		logger.SetPrefix(fmt.Sprintf("binsonfmt[%s] ", runID))
		logger.SetFlags(log.Ltime)
	} else {
		logger.SetOutput(io.Discard)
	}

	switch args[0] {
	case "verify":
		if len(args) < 2 {
			exitf("usage: verify <file>...\n")
		}
		verifyFiles(logger, args[1:])
	case "json":
		if len(args) < 2 {
			exitf("usage: json <file>...\n")
		}
		jsonFiles(logger, args[1:])
	case "fingerprint":
		if len(args) < 2 {
			exitf("usage: fingerprint <file>...\n")
		}
		fingerprintFiles(logger, cfg, args[1:])
	case "bundle":
		if len(args) < 3 {
			exitf("usage: bundle <out.bsnz> <file>...\n")
		}
		bundleFiles(logger, cfg, args[1], args[2:])
	default:
		exitf("commands: verify, json, fingerprint, bundle\n")
	}
}
