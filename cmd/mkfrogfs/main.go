// Package main provides a command-line utility to create formatted FrogFS
// medium images. The image is assembled in memory and published with an
// atomic rename, so a half-written file never appears at the target path.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/renameio"

	"github.com/lmiori92/frogfs"
	"github.com/lmiori92/frogfs/storage"
)

func main() {
	size := flag.Int("size", 4096, "Image capacity in bytes (max 65535)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: mkfrogfs [flags] <image.bin>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}
	if *size < 6 || *size > 65535 {
		log.Fatalf("Invalid size: %d (want 6..65535)", *size)
	}

	store := storage.NewMem(uint16(*size))
	fs, err := frogfs.Mount(store)
	if err != nil {
		log.Fatalf("Mount failed: %v", err)
	}
	if err := fs.Format(); err != nil {
		log.Fatalf("Format failed: %v", err)
	}

	if err := renameio.WriteFile(args[0], store.Bytes(), 0o644); err != nil {
		log.Fatalf("Failed to write image: %v", err)
	}
	fmt.Printf("%s: formatted FrogFS image, %d bytes\n", args[0], *size)
}
