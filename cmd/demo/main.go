package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yiblet/txtreader/internal/libfs"
	"github.com/yiblet/txtreader/internal/library"
	"github.com/yiblet/txtreader/internal/logging"
	"github.com/yiblet/txtreader/internal/pager"
	"github.com/yiblet/txtreader/internal/store/memstore"
)

func main() {
	fmt.Println("txtreader Library Demo")

	ctx := context.Background()
	root, err := os.MkdirTemp("", "txtreader-demo-")
	if err != nil {
		log.Fatalf("Failed to create library directory: %v", err)
	}
	defer os.RemoveAll(root)

	// In-memory store, books on disk under a temp dir
	lib := library.New(memstore.NewMemoryStore(), libfs.NewWithRoot(root),
		library.WithLogger(logging.Discard()))
	defer lib.Close()

	samples := map[string]string{
		"A Tale of Two Cities.txt": strings.Repeat("It was the best of times, it was the worst of times. ", 200),
		"Notes.txt":                "Chapter 1\nShort notes.\n\nChapter 2\nMore notes.\n",
		"三国演义.txt":                 strings.Repeat("滚滚长江东逝水，浪花淘尽英雄。", 300),
	}

	fmt.Println("Importing books:")
	for name, text := range samples {
		book, err := lib.ImportReader(ctx, name, strings.NewReader(text))
		if err != nil {
			log.Printf("Failed to import %s: %v", name, err)
			continue
		}
		fmt.Printf("  %s (%s)\n", book.Title, humanize.Bytes(uint64(book.Size)))
	}

	books, err := lib.List(ctx, library.ListOptions{Sort: library.SortSize})
	if err != nil {
		log.Fatalf("Failed to list books: %v", err)
	}
	fmt.Printf("\nShelf, largest first (%d books):\n", len(books))
	for i, book := range books {
		fmt.Printf("%d. %s\n", i+1, book.Title)
	}

	// Page through the largest book
	book, p, err := lib.Open(ctx, books[0].ID, pager.Config{PageSize: 500})
	if err != nil {
		log.Fatalf("Failed to open %s: %v", books[0].Title, err)
	}
	fmt.Printf("\nReading %q: %d code points, %d pages\n", book.Title, p.Len(), p.PageCount())
	for range 3 {
		fmt.Printf("  page %d/%d at %s: %.40q...\n", p.PageIndex()+1, p.PageCount(),
			pager.FormatProgress(p.CurrentProgress()), p.CurrentPage())
		p.NextPage()
	}

	// Continuous mode loads the text in batches
	p.SwitchToContinuous()
	res := p.JumpToLocation(p.Len() - 10)
	if res.Append != nil {
		p.ApplyAppend(res.Append.Run(ctx))
	}
	fmt.Printf("\nContinuous: %d of %d code points loaded after jumping near the end\n", p.DisplayedLen(), p.Len())

	if err := p.Close(ctx, lib, book.ID); err != nil {
		log.Fatalf("Failed to save progress: %v", err)
	}
	saved, err := lib.Get(ctx, book.ID)
	if err != nil {
		log.Fatalf("Failed to reload book: %v", err)
	}
	fmt.Printf("Saved progress at location %d\n", saved.LastReadLocation)

	fmt.Printf("\nDemo complete! (Using in-memory store)\n")
}
