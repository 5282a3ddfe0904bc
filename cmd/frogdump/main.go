// Package main provides a command-line utility to dump FrogFS medium
// images. It lists the records found by a boot scan and can hex-dump raw
// byte windows for debugging.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/lmiori92/frogfs"
	"github.com/lmiori92/frogfs/storage"
)

func main() {
	offset := flag.Int("offset", 0, "Offset in the image to start the hex dump from")
	length := flag.Int("length", 128, "Number of bytes to hex-dump")
	records := flag.Bool("records", true, "Scan the image and list its records")
	maxRecords := flag.Int("max-records", frogfs.DefaultMaxRecords, "Allocation table size used for the scan")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: frogdump [flags] <image.bin>")
		fmt.Println("Flags:")
		flag.PrintDefaults()
		return
	}

	store, err := storage.OpenFile(args[0])
	if err != nil {
		log.Fatalf("Failed to open image: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Failed to close image: %v", err)
		}
	}()

	capacity := int(store.Capacity())
	fmt.Printf("%s: %d bytes\n", args[0], capacity)

	if *records {
		fs, err := frogfs.Mount(store, frogfs.WithMaxRecords(*maxRecords))
		if err != nil {
			log.Fatalf("Mount failed: %v", err)
		}
		if err := fs.Init(); err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		ids := fs.List(nil)
		fmt.Printf("records: %d\n", len(ids))
		for _, id := range ids {
			n, err := recordLength(fs, id)
			if err != nil {
				log.Fatalf("Record %d read failed: %v", id, err)
			}
			fmt.Printf("  record %3d: %5d bytes\n", id, n)
		}
	}

	if *length <= 0 {
		return
	}
	if *offset < 0 || *offset >= capacity {
		log.Fatalf("Invalid offset: %d (image size: %d)", *offset, capacity)
	}
	n := *length
	if *offset+n > capacity {
		n = capacity - *offset
	}
	buf := make([]byte, n)
	if err := store.Seek(uint16(*offset)); err != nil {
		log.Fatalf("Seek failed: %v", err)
	}
	if err := store.Read(buf); err != nil {
		log.Fatalf("Read failed: %v", err)
	}
	dumpHex(buf, *offset)
}

// recordLength consumes a record through the engine and reports its size.
func recordLength(fs *frogfs.FS, id uint8) (int, error) {
	if err := fs.Open(id); err != nil {
		return 0, err
	}
	buf := make([]byte, 128)
	total := 0
	for {
		n, err := fs.Read(id, buf)
		if err != nil {
			return total, err
		}
		total += n
		if n < len(buf) {
			break
		}
	}
	return total, fs.Close(id)
}

func dumpHex(buf []byte, base int) {
	for i := 0; i < len(buf); i += 16 {
		end := i + 16
		if end > len(buf) {
			end = len(buf)
		}
		fmt.Printf("%04x ", base+i)
		for j := i; j < end; j++ {
			fmt.Printf(" %02x", buf[j])
		}
		fmt.Println()
	}
}
