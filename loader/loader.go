// This file is part of ledcylinder.
//
// ledcylinder is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ledcylinder is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ledcylinder.  If not, see <https://www.gnu.org/licenses/>.

package loader

import (
	"archive/zip"
	"bufio"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/afero/zipfs"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"

	"github.com/ledcylinder/ledcylinder/curated"
	"github.com/ledcylinder/ledcylinder/framebuffer"
	"github.com/ledcylinder/ledcylinder/logger"
	"github.com/ledcylinder/ledcylinder/page"
)

// Error patterns for the loader package.
const (
	UnknownContent = "loader: %s: unknown content type"
	LoadError      = "loader: %s: %v"
	SizeMismatch   = "loader: %s: image is %dx%d but the display is %dx%d"
	BadDuration    = "loader: %s: line %d: bad duration (%s)"
	InvalidLimit   = "loader: brightness limit must be between 1 and 255 (%d)"
	NoPages        = "loader: no pages loaded"
)

// the duration of an animation frame if the .ani file doesn't say
const defaultFrameDuration = 100 * time.Millisecond

// Loader creates pages for a display of a fixed size.
type Loader struct {
	fs afero.Fs

	width  int
	height int
	limit  uint8

	// log detail about each file loaded
	Verbose logger.Verbosity
}

// NewLoader is the preferred method of initialisation for the Loader type. The
// brightness limit must be in the range 1 to 255.
func NewLoader(fs afero.Fs, width int, height int, limit int) (*Loader, error) {
	if limit < 1 || limit > 255 {
		return nil, curated.Errorf(InvalidLimit, limit)
	}
	return &Loader{
		fs:     fs,
		width:  width,
		height: height,
		limit:  uint8(limit),
	}, nil
}

// Load creates a page from the named file. The type of page depends on the
// file's extension. Returns nil and no error for files that are recognised
// but which do not produce a page.
func (ld *Loader) Load(path string) (page.Page, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp":
		return ld.loadStatic(path)
	case ".ani":
		return ld.loadAnimation(path)
	case ".aseprite":
		return nil, nil
	}
	return nil, curated.Errorf(UnknownContent, path)
}

// LoadAll loads every file in the list. Directories in the list are replaced
// by the files they contain, in name order. Subdirectories are not searched.
//
// A file that fails to load is logged and skipped. An error is returned only
// if there are no pages at the end.
func (ld *Loader) LoadAll(paths []string) ([]page.Page, error) {
	var pages []page.Page

	for _, fn := range ld.expand(paths) {
		if strings.ToLower(filepath.Ext(fn)) == ".zip" {
			pages = append(pages, ld.loadArchive(fn)...)
			continue
		}

		p, err := ld.Load(fn)
		if err != nil {
			logger.Log(logger.Allow, "loader", err.Error())
			continue
		}
		if p == nil {
			continue
		}
		logger.Logf(logger.Allow, "loader", "%s: %s", fn, Describe(p))
		pages = append(pages, p)
	}

	if len(pages) == 0 {
		return nil, curated.Errorf(NoPages)
	}

	return pages, nil
}

// loadArchive loads every file in the root of a zip archive. Animation frames
// are found in the archive's subdirectories in the same way as for content
// outside of an archive. Errors are logged and the pages that could be loaded
// are returned.
func (ld *Loader) loadArchive(path string) []page.Page {
	f, err := ld.fs.Open(path)
	if err != nil {
		logger.Log(logger.Allow, "loader", curated.Errorf(LoadError, path, err).Error())
		return nil
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		logger.Log(logger.Allow, "loader", curated.Errorf(LoadError, path, err).Error())
		return nil
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		logger.Log(logger.Allow, "loader", curated.Errorf(LoadError, path, err).Error())
		return nil
	}

	sub := &Loader{
		fs:      zipfs.New(zr),
		width:   ld.width,
		height:  ld.height,
		limit:   ld.limit,
		Verbose: ld.Verbose,
	}

	pages, err := sub.LoadAll([]string{string(filepath.Separator)})
	if err != nil {
		logger.Logf(logger.Allow, "loader", "%s: %v", path, err)
		return nil
	}
	return pages
}

func (ld *Loader) expand(paths []string) []string {
	var files []string
	for _, p := range paths {
		info, err := ld.fs.Stat(p)
		if err != nil || !info.IsDir() {
			// errors opening the file will be reported by Load()
			files = append(files, p)
			continue
		}

		entries, err := afero.ReadDir(ld.fs, p)
		if err != nil {
			logger.Logf(logger.Allow, "loader", "%s: %v", p, err)
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				files = append(files, filepath.Join(p, e.Name()))
			}
		}
	}
	return files
}

// Describe returns a short description of the page for log messages and reports.
func Describe(p page.Page) string {
	if an, ok := p.(*page.Animation); ok {
		return "animation of " + strconv.Itoa(an.NumFrames()) + " frames"
	}
	return "static image"
}

func (ld *Loader) loadStatic(path string) (page.Page, error) {
	fr, err := ld.decode(path)
	if err != nil {
		return nil, err
	}
	if LimitBrightness([]*framebuffer.Frame{fr}, ld.limit) {
		logger.Logf(logger.Allow, "loader", "%s: too bright. limiting to %d", path, ld.limit)
	}
	return page.NewStatic(fr), nil
}

func (ld *Loader) loadAnimation(path string) (page.Page, error) {
	f, err := ld.fs.Open(path)
	if err != nil {
		return nil, curated.Errorf(LoadError, path, err)
	}
	defer f.Close()

	dir := filepath.Join(filepath.Dir(path), strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

	var frames []*framebuffer.Frame
	var durations []time.Duration

	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++

		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i != -1 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		d := defaultFrameDuration
		if len(fields) >= 2 {
			secs, err := strconv.ParseFloat(fields[1], 64)
			if err != nil || secs <= 0 || math.IsInf(secs, 0) || math.IsNaN(secs) {
				return nil, curated.Errorf(BadDuration, path, lineNum, fields[1])
			}
			d = time.Duration(math.Round(secs * float64(time.Second)))
		}

		fr, err := ld.decode(filepath.Join(dir, fields[0]))
		if err != nil {
			return nil, err
		}

		frames = append(frames, fr)
		durations = append(durations, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(LoadError, path, err)
	}

	if LimitBrightness(frames, ld.limit) {
		logger.Logf(logger.Allow, "loader", "%s: too bright. limiting to %d", path, ld.limit)
	}

	an, err := page.NewAnimation(frames, durations)
	if err != nil {
		return nil, curated.Errorf(LoadError, path, err)
	}
	return an, nil
}

// decode an image file into a frame the size of the display
func (ld *Loader) decode(path string) (*framebuffer.Frame, error) {
	f, err := ld.fs.Open(path)
	if err != nil {
		return nil, curated.Errorf(LoadError, path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, curated.Errorf(LoadError, path, err)
	}

	b := img.Bounds()
	if b.Dx() != ld.width || b.Dy() != ld.height {
		return nil, curated.Errorf(SizeMismatch, path, b.Dx(), b.Dy(), ld.width, ld.height)
	}

	fr := framebuffer.New(ld.width, ld.height)

	// alpha is discarded. the colour of a transparent pixel is used as it is
	// stored, not as it would look against black
	switch img := img.(type) {
	case *image.Paletted:
		pal := make([]color.NRGBA, len(img.Palette))
		for i, c := range img.Palette {
			pal[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
		}
		for y := 0; y < ld.height; y++ {
			for x := 0; x < ld.width; x++ {
				i := int(img.ColorIndexAt(x+b.Min.X, y+b.Min.Y))
				if i < len(pal) {
					fr.Set(x, y, pal[i].R, pal[i].G, pal[i].B)
				}
			}
		}

	default:
		nrgba, ok := img.(*image.NRGBA)
		if !ok {
			logger.Logf(ld.Verbose, "loader", "%s: converting %s image to RGB", path, format)
			nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
			draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
		}
		for y := 0; y < ld.height; y++ {
			for x := 0; x < ld.width; x++ {
				i := nrgba.PixOffset(x+nrgba.Rect.Min.X, y+nrgba.Rect.Min.Y)
				fr.Set(x, y, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
			}
		}
	}

	return fr, nil
}

// LimitBrightness scales every value in the frames so that the brightest
// value across all the frames is no greater than limit. Frames are changed in
// place. Returns true if any scaling was required.
//
// Applying the same limit more than once has no further effect.
func LimitBrightness(frames []*framebuffer.Frame, limit uint8) bool {
	var vmax uint8
	for _, fr := range frames {
		vmax = max(vmax, fr.Max())
	}
	if vmax <= limit {
		return false
	}

	scale := float64(limit) / float64(vmax)
	for _, fr := range frames {
		for i, v := range fr.Pix {
			fr.Pix[i] = uint8(min(255, math.RoundToEven(float64(v)*scale)))
		}
	}
	return true
}
