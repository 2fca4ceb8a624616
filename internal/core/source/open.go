package source

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/hexbench/internal/core/geom"
)

// BackupSuffix is appended to the open file's path to form its backup
// sibling.
const BackupSuffix = ".hexbench_bak"

// OpenSpec describes what to open and how.
type OpenSpec struct {
	// Path of the file to open. "-" reads from Stdin instead.
	Path string
	// Seek is the byte offset to seek to before reading.
	Seek uint64
	// Take caps how many bytes are read. Negative means read to the end.
	Take int64
	// ReadOnly opens the file without write permission.
	ReadOnly bool
	// Mmap memory-maps the file instead of materializing it. The mapped
	// variant is read-only.
	Mmap bool
	// Stdin is the reader used when Path is "-". Defaults to os.Stdin.
	Stdin io.Reader
}

// Handle binds a Source to the file or stream it was opened from. It is the
// single owner of those resources for the session: saving, reloading,
// backups and closing all go through it.
type Handle struct {
	src  Source
	file *os.File
	path string
	spec OpenSpec
}

// Open binds a source per spec. On failure nothing is left half-open: the
// error is returned and no resources are retained.
func Open(spec OpenSpec) (*Handle, error) {
	if spec.Path == "" {
		return nil, fmt.Errorf("open: no path given")
	}

	if spec.Path == "-" {
		in := spec.Stdin
		if in == nil {
			in = os.Stdin
		}
		return &Handle{src: NewStream(in), spec: spec}, nil
	}

	if spec.Mmap {
		m, err := OpenMapped(spec.Path)
		if err != nil {
			return nil, fmt.Errorf("open mapped: %w", err)
		}
		return &Handle{src: m, path: spec.Path, spec: spec}, nil
	}

	f, err := openFile(spec.Path, spec.ReadOnly)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	data, err := readContents(f, spec.Seek, spec.Take)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("read contents: %w", err)
	}

	src := NewBufferWithAttrs(data, Attributes{
		Seekable: true,
		Perms:    Permissions{Read: true, Write: !spec.ReadOnly},
	})
	return &Handle{src: src, file: f, path: spec.Path, spec: spec}, nil
}

func openFile(path string, readOnly bool) (*os.File, error) {
	flag := os.O_RDWR
	if readOnly {
		flag = os.O_RDONLY
	}
	return os.OpenFile(path, flag, 0)
}

func readContents(f *os.File, seek uint64, take int64) ([]byte, error) {
	if _, err := f.Seek(int64(seek), io.SeekStart); err != nil {
		return nil, err
	}
	var r io.Reader = f
	if take >= 0 {
		r = io.LimitReader(f, take)
	}
	return io.ReadAll(r)
}

// Source returns the currently bound source. Reload replaces it wholesale,
// so callers should not retain the returned value across reloads.
func (h *Handle) Source() Source { return h.src }

// Attrs returns the bound source's attributes.
func (h *Handle) Attrs() Attributes { return h.src.Attrs() }

// Path returns the open file's path, empty for stdin.
func (h *Handle) Path() string { return h.path }

// Writable reports whether edits can be persisted through this handle.
func (h *Handle) Writable() bool {
	return h.file != nil && h.src.Attrs().Perms.Write
}

// Save writes the damaged range back to the file, or the full contents when
// hasDamage is false. The write lands at the open spec's seek base so a
// partial read window is written back where it came from.
//
// A failed save returns before clearing anything: the caller keeps its
// damage tracking intact so a retry covers the same range.
func (h *Handle) Save(damaged geom.Region, hasDamage bool) error {
	if h.file == nil {
		return ErrNoFile
	}
	if !h.src.Attrs().Perms.Write {
		return ErrReadOnly
	}

	var (
		data   []byte
		offset = h.spec.Seek
	)
	if hasDamage {
		d, ok := h.src.ReadRange(damaged)
		if !ok {
			return fmt.Errorf("save: damaged range %d..%d outside source", damaged.Begin, damaged.End)
		}
		data = d
		offset += damaged.Begin
		log.Debug().
			Uint64("begin", damaged.Begin).
			Uint64("end", damaged.End).
			Uint64("len", damaged.Len()).
			Msg("writing damaged region")
	} else {
		if h.src.Len() == 0 {
			return nil
		}
		d, ok := h.src.ReadRange(geom.NewRegion(0, h.src.Len()-1))
		if !ok {
			return fmt.Errorf("save: source refused full range read")
		}
		data = d
	}

	if _, err := h.file.WriteAt(data, int64(offset)); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Reload replaces the source wholesale from the backing file, discarding
// in-memory edits.
func (h *Handle) Reload() error {
	if h.spec.Mmap {
		m, err := OpenMapped(h.path)
		if err != nil {
			return fmt.Errorf("reload mapped: %w", err)
		}
		_ = h.src.Close()
		h.src = m
		return nil
	}

	if h.file == nil {
		return ErrNoFile
	}
	data, err := readContents(h.file, h.spec.Seek, h.spec.Take)
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	attrs := h.src.Attrs()
	_ = h.src.Close()
	h.src = NewBufferWithAttrs(data, attrs)
	return nil
}

// BackupPath returns the sibling path backups are copied to.
func (h *Handle) BackupPath() (string, error) {
	if h.path == "" {
		return "", ErrNoFile
	}
	return h.path + BackupSuffix, nil
}

// Backup copies the open file to its backup sibling.
func (h *Handle) Backup() error {
	bak, err := h.BackupPath()
	if err != nil {
		return err
	}
	return copyFile(h.path, bak)
}

// RestoreBackup copies the backup sibling over the open file, then reloads.
func (h *Handle) RestoreBackup() error {
	bak, err := h.BackupPath()
	if err != nil {
		return err
	}
	if err := copyFile(bak, h.path); err != nil {
		return err
	}
	return h.Reload()
}

// Close releases the source and the file handle. The handle must not be
// used afterwards.
func (h *Handle) Close() error {
	err := h.src.Close()
	if h.file != nil {
		if cerr := h.file.Close(); err == nil {
			err = cerr
		}
		h.file = nil
	}
	return err
}

func copyFile(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return fmt.Errorf("copy %s: %w", from, err)
	}
	defer src.Close()

	dst, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("copy to %s: %w", to, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("copy %s to %s: %w", from, to, err)
	}
	return dst.Close()
}
