package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"cms-admin/internal/editor"
)

// parseBlock reads "type:key=value,key=value". Values cannot contain commas.
func parseBlock(spec string) (string, map[string]string, error) {
	typ, rest, _ := strings.Cut(spec, ":")
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return "", nil, fmt.Errorf("block %q has no type", spec)
	}

	fields := map[string]string{}
	if strings.TrimSpace(rest) == "" {
		return typ, fields, nil
	}
	for _, pair := range strings.Split(rest, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return "", nil, fmt.Errorf("block %q: expected key=value, got %q", spec, pair)
		}
		fields[key] = value
	}
	return typ, fields, nil
}

func addBlock(s *editor.Session, spec string) error {
	typ, fields, err := parseBlock(spec)
	if err != nil {
		return err
	}
	b, ok := s.AddComponent(typ)
	if !ok {
		return fmt.Errorf("unknown component type %q", typ)
	}
	for key, value := range fields {
		s.SetField(b.ID, key, value)
	}
	return nil
}

// blockAt returns the id of the block at a zero-based position.
func blockAt(s *editor.Session, arg string) (string, error) {
	pos, err := strconv.Atoi(arg)
	blocks := s.Blocks()
	if err != nil || pos < 0 || pos >= len(blocks) {
		return "", fmt.Errorf("no block at position %q", arg)
	}
	return blocks[pos].ID, nil
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
