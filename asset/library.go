package asset

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/gogpu/sprite"
	"github.com/gogpu/sprite/internal/cache"
	"golang.org/x/sync/singleflight"
)

type imageKey struct {
	name string
	cs   ColorSpace
}

// LibraryStats reports the contents and hit rate of a Library.
type LibraryStats struct {
	Images int
	Sheets int
	Hits   uint64
	Misses uint64
}

// Library loads images and spritesheets from a file system and keeps the
// most recently used ones decoded. Names are slash-separated paths in the
// file system, as for fs.Open.
//
// A Library is safe for concurrent use. Concurrent loads of one name share
// a single decode; loads of different names run in parallel. Returned
// values are shared between callers and must not be modified.
type Library struct {
	fsys   fs.FS
	images *cache.Cache[imageKey, *ImageSource]
	sheets *cache.Cache[string, *Sheet]
	loads  singleflight.Group
}

// NewLibrary returns a library over fsys that keeps up to limit images
// and limit sheets. A limit of 0 keeps everything.
func NewLibrary(fsys fs.FS, limit int) *Library {
	return &Library{
		fsys: fsys,
		images: cache.New(limit, func(k imageKey, _ *ImageSource) {
			sprite.Logger().Debug("asset: image dropped",
				slog.String("path", k.name), slog.String("space", k.cs.String()))
		}),
		sheets: cache.New(limit, func(name string, _ *Sheet) {
			sprite.Logger().Debug("asset: spritesheet dropped", slog.String("path", name))
		}),
	}
}

// Image returns the decoded image name.
func (l *Library) Image(name string, cs ColorSpace) (*ImageSource, error) {
	key := imageKey{name, cs}
	if src, ok := l.images.Get(key); ok {
		return src, nil
	}
	v, err, _ := l.loads.Do("image\x00"+cs.String()+"\x00"+name, func() (any, error) {
		if src, ok := l.images.Peek(key); ok {
			return src, nil
		}
		f, err := l.fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("open image: %w", err)
		}
		defer f.Close()

		src, err := Decode(f, cs)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		l.images.Set(key, src)
		return src, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ImageSource), nil
}

// Sheet returns the parsed spritesheet name. A relative Meta.Image is
// resolved against the sheet's directory, so it can be passed to Image.
func (l *Library) Sheet(name string) (*Sheet, error) {
	if s, ok := l.sheets.Get(name); ok {
		return s, nil
	}
	v, err, _ := l.loads.Do("sheet\x00"+name, func() (any, error) {
		if s, ok := l.sheets.Peek(name); ok {
			return s, nil
		}
		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("open spritesheet: %w", err)
		}
		s, err := ParseSheet(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if s.Meta.Image != "" && !path.IsAbs(s.Meta.Image) {
			s.Meta.Image = path.Join(path.Dir(name), s.Meta.Image)
		}
		l.sheets.Set(name, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Sheet), nil
}

// SheetImage decodes the image of s, which must come from Sheet.
func (l *Library) SheetImage(s *Sheet, cs ColorSpace) (*ImageSource, error) {
	if s.Meta.Image == "" {
		return nil, fmt.Errorf("%w: no image", ErrInvalidSheet)
	}
	return l.Image(s.Meta.Image, cs)
}

// Forget drops name from the library in every color space, so the next
// load reads it again. It reports whether anything was cached.
func (l *Library) Forget(name string) bool {
	found := l.sheets.Delete(name)
	for _, cs := range []ColorSpace{SRGB, Linear} {
		if l.images.Delete(imageKey{name, cs}) {
			found = true
		}
	}
	return found
}

// Len returns the number of cached images and sheets.
func (l *Library) Len() int {
	return l.images.Len() + l.sheets.Len()
}

// Stats returns the current cache counts and lookup totals.
func (l *Library) Stats() LibraryStats {
	img, sh := l.images.Stats(), l.sheets.Stats()
	return LibraryStats{
		Images: img.Len,
		Sheets: sh.Len,
		Hits:   img.Hits + sh.Hits,
		Misses: img.Misses + sh.Misses,
	}
}

// Purge drops everything cached.
func (l *Library) Purge() {
	l.images.Clear()
	l.sheets.Clear()
}
