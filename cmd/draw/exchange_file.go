package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"giftexchange/internal/matcher"
)

// exchangeFile is the YAML input of the draw command. Participants are
// identified by name.
//
//	participants: [Ana, Beto, Carla]
//	exclusions:
//	  Ana: [Beto]
type exchangeFile struct {
	Participants []string            `yaml:"participants"`
	Exclusions   map[string][]string `yaml:"exclusions"`
}

func loadExchangeFile(r io.Reader) (*exchangeFile, error) {
	var f exchangeFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty exchange file")
		}
		return nil, fmt.Errorf("parse exchange file: %w", err)
	}
	for i, name := range f.Participants {
		f.Participants[i] = strings.TrimSpace(name)
	}
	return &f, nil
}

// unknownNames lists, sorted, the exclusion entries that do not name a
// participant. They are reported to the user; the matcher ignores them.
func (f *exchangeFile) unknownNames() []string {
	known := make(map[string]bool, len(f.Participants))
	for _, name := range f.Participants {
		known[name] = true
	}
	var unknown []string
	seen := map[string]bool{}
	note := func(name string) {
		if !known[name] && !seen[name] {
			seen[name] = true
			unknown = append(unknown, name)
		}
	}
	for giver, receivers := range f.Exclusions {
		note(giver)
		for _, receiver := range receivers {
			note(receiver)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func (f *exchangeFile) exclusions() matcher.Exclusions {
	return matcher.Exclusions(f.Exclusions)
}
