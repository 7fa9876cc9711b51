// Command atom-dump prints the atom tree of an MP4 file.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/simonhull/tagsync/internal/m4a"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: atom-dump <file.m4a>")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	atoms, err := m4a.Parse(data, os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	m4a.Walk(atoms, func(a *m4a.Atom, depth int) {
		name := strings.ToValidUTF8(strings.ReplaceAll(a.Type, "\xA9", "©"), "?")
		fmt.Printf("%s%s (size: %d, offset: %d)\n", strings.Repeat("  ", depth), name, a.Size, a.Offset)
	})
}
