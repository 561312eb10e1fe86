package main

import "strings"

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, "; ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// shortID abbreviates note ids for listings; the full id still works as input.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
