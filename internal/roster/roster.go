// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roster loads the canonical researcher list used for author
// matching. The roster is a plain-text file, one researcher per line, and
// line order matters: the matcher scans entries in roster order.
package roster

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads the roster file at path. Blank lines are ignored.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	names, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}
	return names, nil
}

// Parse reads roster lines from r, preserving order. Two line formats are
// accepted: a bare full name, and the labeled form
// "First Name: Ilham , Last Name: ALLOUI" produced by the scraping tooling,
// which is recombined into "First Last".
func Parse(r io.Reader) ([]string, error) {
	var names []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if name := parseLine(line); name != "" {
			names = append(names, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}

	return names, nil
}

func parseLine(line string) string {
	if !strings.Contains(line, "First Name:") {
		return line
	}

	first, last := "", ""
	for _, part := range strings.SplitN(line, ",", 2) {
		part = strings.TrimSpace(part)
		switch {
		case strings.HasPrefix(part, "First Name:"):
			first = strings.TrimSpace(strings.TrimPrefix(part, "First Name:"))
		case strings.HasPrefix(part, "Last Name:"):
			last = strings.TrimSpace(strings.TrimPrefix(part, "Last Name:"))
		}
	}

	return strings.TrimSpace(first + " " + last)
}
