// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Command gpsexif prints the GPS fields of JPEG files.
//
// Usage:
//
//	gpsexif [-latlong] [-fields latitude,longitude] [-v] file...
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/bep/gpsexif"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gpsexif: ")

	if err := run(os.Args[1:], os.Stdout, log.Default()); err != nil {
		log.Fatal(err)
	}
}

type config struct {
	latLong bool
	fields  map[gpsexif.Field]bool
	verbose bool
}

func parseFlags(args []string, output io.Writer) (config, []string, error) {
	var cfg config

	fs := flag.NewFlagSet("gpsexif", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&cfg.latLong, "latlong", false, "print decimal latitude and longitude instead of the JSON record")
	fields := fs.String("fields", "", "comma separated list of fields to read, e.g. latitude,latitude_ref")
	fs.BoolVar(&cfg.verbose, "v", false, "print warnings")

	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}

	if *fields != "" {
		cfg.fields = make(map[gpsexif.Field]bool)
		for _, name := range strings.Split(*fields, ",") {
			f, ok := gpsexif.FieldByName(strings.TrimSpace(name))
			if !ok {
				return cfg, nil, fmt.Errorf("unknown field %q", name)
			}
			cfg.fields[f] = true
		}
	}

	if fs.NArg() == 0 {
		return cfg, nil, fmt.Errorf("no files given")
	}

	return cfg, fs.Args(), nil
}

func run(args []string, stdout io.Writer, logger *log.Logger) error {
	cfg, filenames, err := parseFlags(args, logger.Writer())
	if err != nil {
		return err
	}

	opts := gpsexif.Options{}
	if cfg.fields != nil {
		opts.ShouldHandleField = func(f gpsexif.Field) bool {
			return cfg.fields[f]
		}
	}
	if cfg.verbose {
		opts.Warnf = logger.Printf
	}

	enc := json.NewEncoder(stdout)

	for _, filename := range filenames {
		rec, err := decodeFile(filename, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}

		if cfg.latLong {
			lat, long, ok := rec.LatLong()
			if !ok {
				fmt.Fprintf(stdout, "%s -\n", filename)
				continue
			}
			fmt.Fprintf(stdout, "%s %.6f %.6f\n", filename, lat, long)
			continue
		}

		if err := enc.Encode(struct {
			File string         `json:"file"`
			GPS  gpsexif.Record `json:"gps"`
		}{filename, rec}); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
	}

	return nil
}

func decodeFile(filename string, opts gpsexif.Options) (gpsexif.Record, error) {
	f, err := os.Open(filename)
	if err != nil {
		return gpsexif.Record{}, err
	}
	defer f.Close()

	opts.R = f
	return gpsexif.Decode(opts)
}
