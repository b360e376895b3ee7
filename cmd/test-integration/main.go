package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yiblet/txtreader/internal/library"
	"github.com/yiblet/txtreader/internal/logging"
	"github.com/yiblet/txtreader/internal/pager"
	"github.com/yiblet/txtreader/internal/store"
	"github.com/yiblet/txtreader/internal/tui"
)

const (
	width  = 100
	height = 24
)

func main() {
	fmt.Println("Testing Reader Layout")
	fmt.Println("=====================")

	text := strings.Repeat("第一章 开端\n天下大势，分久必合，合久必分。Mixed ASCII words run alongside. ", 80)
	title := "Sample"
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			log.Fatalf("Error reading %s: %v", os.Args[1], err)
		}
		text, err = pager.Decode(data, "")
		if err != nil {
			log.Fatalf("Error decoding %s: %v", os.Args[1], err)
		}
		title = library.TitleFromFileName(os.Args[1])
	}

	failures := 0
	for _, mode := range []pager.Mode{pager.ModePaginated, pager.ModeContinuous} {
		p := pager.New(text, 0, pager.DefaultConfig(), pager.WithLogger(logging.Discard()))
		prefs := library.DefaultPreferences()
		prefs.PageTurn = mode

		model, _ := tui.NewReaderModel(&store.Book{Title: title}, p, pager.DetectChapters(p.Document()), nil, prefs, width, height)
		lines := strings.Split(tui.ReaderView(model), "\n")

		fmt.Printf("\n%s view (%d lines):\n", mode, len(lines))
		fmt.Println(strings.Repeat("=", width))
		for i, line := range lines {
			w := lipgloss.Width(line)
			if w > width {
				failures++
				fmt.Printf("Line %2d is %d cells wide: %s\n", i, w, line)
				continue
			}
			fmt.Printf("Line %2d: %s\n", i, line)
		}
		fmt.Println(strings.Repeat("=", width))

		if len(lines) != height-1 {
			failures++
			fmt.Printf("Expected %d lines, got %d\n", height-1, len(lines))
		}
	}

	if failures > 0 {
		fmt.Printf("\n%d layout problems found\n", failures)
		os.Exit(1)
	}
	fmt.Println("\nLayout check complete!")
}
