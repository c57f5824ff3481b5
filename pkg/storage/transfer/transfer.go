// Package transfer fetches resource and job files into a job directory.
// Remote locations go through go-getter, local paths are copied.
package transfer

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/hashicorp/go-getter"
	"github.com/otiai10/copy"
	"github.com/rs/zerolog/log"

	"github.com/genie-oss/genie/pkg/genieerrors"
)

const errComponent = "FileTransfer"

// FileTransfer copies src to the host path dst. dst is always a file path;
// parent directories are created as needed.
type FileTransfer interface {
	Supports(src string) bool
	Get(ctx context.Context, src, dst string) error
}

// Local copies files and directories from the local filesystem. It accepts
// plain paths and file:// URLs.
type Local struct{}

func NewLocal() *Local {
	return &Local{}
}

func (l *Local) Supports(src string) bool {
	u, err := url.Parse(src)
	if err != nil {
		return filepath.IsAbs(src)
	}
	return u.Scheme == "" || u.Scheme == "file"
}

func (l *Local) Get(_ context.Context, src, dst string) error {
	path := strings.TrimPrefix(src, "file://")
	if err := copy.Copy(path, dst, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction { return copy.Deep },
	}); err != nil {
		return transferError(err, src, dst)
	}
	return nil
}

// Remote downloads http(s), s3, gcs and git locations with go-getter.
type Remote struct{}

func NewRemote() *Remote {
	return &Remote{}
}

func (r *Remote) Supports(src string) bool {
	// forced getter, e.g. s3::https://...
	if strings.Contains(src, "::") {
		return true
	}
	u, err := url.Parse(src)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "s3", "gcs", "git":
		return true
	default:
		return false
	}
}

func (r *Remote) Get(ctx context.Context, src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return transferError(err, src, dst)
	}
	if err := getter.GetFile(dst, src, getter.WithContext(ctx)); err != nil {
		return transferError(err, src, dst)
	}
	return nil
}

// Composite dispatches to the first transfer supporting the source and
// rejects files above a size limit.
type Composite struct {
	transfers []FileTransfer
	maxSize   datasize.ByteSize
}

// NewComposite returns a transfer trying each of transfers in order. A zero
// maxSize disables the limit.
func NewComposite(maxSize datasize.ByteSize, transfers ...FileTransfer) *Composite {
	return &Composite{transfers: transfers, maxSize: maxSize}
}

// NewDefault handles local paths and the remote schemes go-getter knows.
func NewDefault(maxSize datasize.ByteSize) *Composite {
	return NewComposite(maxSize, NewLocal(), NewRemote())
}

func (c *Composite) Supports(src string) bool {
	return c.find(src) != nil
}

func (c *Composite) Get(ctx context.Context, src, dst string) error {
	t := c.find(src)
	if t == nil {
		return genieerrors.New("no file transfer supports %s", src).
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent).
			WithDetail("source", src)
	}
	if err := t.Get(ctx, src, dst); err != nil {
		return err
	}
	if c.maxSize > 0 {
		size, err := sizeOf(dst)
		if err != nil {
			return transferError(err, src, dst)
		}
		if size > c.maxSize {
			_ = os.RemoveAll(dst)
			return genieerrors.New("%s is %s, larger than the %s limit", src, size.HR(), c.maxSize.HR()).
				WithCode(genieerrors.ValidationError).
				WithComponent(errComponent).
				WithDetail("source", src)
		}
	}
	log.Ctx(ctx).Debug().Str("Source", src).Str("Destination", dst).Msg("transferred file")
	return nil
}

func (c *Composite) find(src string) FileTransfer {
	for _, t := range c.transfers {
		if t.Supports(src) {
			return t
		}
	}
	return nil
}

func sizeOf(path string) (datasize.ByteSize, error) {
	var total int64
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return datasize.ByteSize(total), err
}

// FileName returns the last path element of a source location. It is empty
// when the location has no usable name, such as a bare host, "." or "..".
func FileName(src string) string {
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		src = u.Path
	}
	src = strings.TrimRight(src, "/")
	if i := strings.LastIndex(src, "/"); i >= 0 {
		src = src[i+1:]
	}
	if src == "." || src == ".." || strings.ContainsRune(src, '\\') {
		return ""
	}
	return src
}

func transferError(err error, src, dst string) error {
	return genieerrors.Wrap(err, "failed to transfer %s to %s", src, dst).
		WithCode(genieerrors.IOError).
		WithComponent(errComponent).
		WithDetail("source", src)
}

var (
	_ FileTransfer = (*Local)(nil)
	_ FileTransfer = (*Remote)(nil)
	_ FileTransfer = (*Composite)(nil)
)
