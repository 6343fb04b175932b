// Command slidegest extracts slide text from a .pptx file.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgallion1/slidegest/internal/pptx"
	"github.com/spf13/pflag"
)

func main() {
	jsonOut := pflag.Bool("json", false, "emit slides as JSON")
	workers := pflag.Int("workers", pptx.DefaultWorkers, "concurrent slide parses")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] file.pptx\n\nFlags:\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}

	slides, err := pptx.ExtractText(pflag.Arg(0), pptx.LoadOptions{Workers: *workers})
	if err != nil {
		fmt.Fprintf(os.Stderr, "slidegest: %v\n", err)
		os.Exit(1)
	}

	if *jsonOut {
		type slideJSON struct {
			ID   string   `json:"id"`
			Path string   `json:"path"`
			Text []string `json:"text"`
		}
		out := make([]slideJSON, 0, len(slides))
		for _, s := range slides {
			out = append(out, slideJSON{ID: s.ID, Path: s.Path, Text: s.Text})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(os.Stderr, "slidegest: %v\n", err)
			os.Exit(1)
		}
		return
	}

	for i, s := range slides {
		fmt.Printf("--- slide %d (%s) ---\n", i+1, s.ID)
		for _, block := range s.Text {
			fmt.Println(block)
		}
		fmt.Println()
	}
}
