package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/lmiori92/frogfs/internal/utils"
)

// File is a Storage backed by an image file on the host filesystem.
// The image length fixes the emulated capacity, so an image behaves like
// an EEPROM of exactly that size.
type File struct {
	f        *os.File
	capacity uint16
}

// maxImageSize bounds image files to what a uint16 can address.
const maxImageSize = 65535

// OpenFile opens an existing medium image. The capacity is taken from the
// file size, which must not exceed 65535 bytes.
func OpenFile(path string) (*File, error) {
	//nolint:gosec // G304: user-provided image path is intentional for a storage library
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, utils.WrapError("image open failed", err)
	}
	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, utils.WrapError("image stat failed", err)
	}
	if fi.Size() > maxImageSize {
		_ = f.Close()
		return nil, utils.WrapError(fmt.Sprintf("image size %d exceeds %d bytes", fi.Size(), maxImageSize), utils.ErrIO)
	}
	return &File{f: f, capacity: uint16(fi.Size())}, nil
}

// CreateFile creates a zero-filled medium image of the given capacity,
// truncating any existing file at path.
func CreateFile(path string, capacity uint16) (*File, error) {
	//nolint:gosec // G304: user-provided image path is intentional for a storage library
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, utils.WrapError("image create failed", err)
	}
	if err := f.Truncate(int64(capacity)); err != nil {
		_ = f.Close()
		return nil, utils.WrapError("image truncate failed", err)
	}
	return &File{f: f, capacity: capacity}, nil
}

// Capacity returns the total byte capacity of the medium.
func (s *File) Capacity() uint16 {
	return s.capacity
}

// Seek positions the cursor at the given absolute offset.
func (s *File) Seek(offset uint16) error {
	if offset > s.capacity {
		return utils.WrapErrorAt(fmt.Sprintf("seek beyond capacity %d", s.capacity), offset, utils.ErrIO)
	}
	if _, err := s.f.Seek(int64(offset), io.SeekStart); err != nil {
		return utils.WrapError("image seek failed", err)
	}
	return nil
}

// Advance moves the cursor forward by n bytes.
func (s *File) Advance(n uint16) error {
	pos, err := s.Position()
	if err != nil {
		return err
	}
	if int(pos)+int(n) > int(s.capacity) {
		return utils.WrapErrorAt(fmt.Sprintf("advance by %d beyond capacity %d", n, s.capacity), pos, utils.ErrIO)
	}
	if _, err := s.f.Seek(int64(n), io.SeekCurrent); err != nil {
		return utils.WrapError("image seek failed", err)
	}
	return nil
}

// Backtrack moves the cursor backward by n bytes.
func (s *File) Backtrack(n uint16) error {
	pos, err := s.Position()
	if err != nil {
		return err
	}
	if n > pos {
		return utils.WrapErrorAt(fmt.Sprintf("backtrack by %d before start of medium", n), pos, utils.ErrIO)
	}
	if _, err := s.f.Seek(-int64(n), io.SeekCurrent); err != nil {
		return utils.WrapError("image seek failed", err)
	}
	return nil
}

// Position returns the current cursor offset.
func (s *File) Position() (uint16, error) {
	pos, err := s.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, utils.WrapError("image position failed", err)
	}
	return uint16(pos), nil
}

// AtEnd reports whether the cursor sits on the last byte of the medium.
func (s *File) AtEnd() bool {
	pos, err := s.Position()
	if err != nil {
		return true
	}
	return s.capacity == 0 || pos >= s.capacity-1
}

// Read fills p from the medium and advances the cursor.
func (s *File) Read(p []byte) error {
	pos, err := s.Position()
	if err != nil {
		return err
	}
	if int(pos)+len(p) > int(s.capacity) {
		return utils.WrapErrorAt(fmt.Sprintf("read of %d bytes beyond capacity %d", len(p), s.capacity), pos, utils.ErrIO)
	}
	if _, err := io.ReadFull(s.f, p); err != nil {
		return utils.WrapError("image read failed", err)
	}
	return nil
}

// Write stores p on the medium and advances the cursor.
func (s *File) Write(p []byte) error {
	pos, err := s.Position()
	if err != nil {
		return err
	}
	if int(pos)+len(p) > int(s.capacity) {
		return utils.WrapErrorAt(fmt.Sprintf("write of %d bytes beyond capacity %d", len(p), s.capacity), pos, utils.ErrIO)
	}
	if _, err := s.f.Write(p); err != nil {
		return utils.WrapError("image write failed", err)
	}
	return nil
}

// Sync flushes the image file to stable storage.
func (s *File) Sync() {
	_ = s.f.Sync()
}

// Close releases the image file.
func (s *File) Close() error {
	if err := s.f.Close(); err != nil {
		return utils.WrapError("image close failed", err)
	}
	return nil
}
