package photoframe

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/bodgit/photoframe/bmp"
	"github.com/bodgit/photoframe/palette"
	"github.com/bodgit/photoframe/render"
	"github.com/bodgit/photoframe/thumbnail"
)

var (
	errCancelled  = errors.New("photoframe: export cancelled")
	errNoUploader = errors.New("photoframe: no uploader configured")
)

// Export is a finished bitmap ready for uploading.
type Export struct {
	Bitmap    []byte
	Thumbnail []byte
	SHA1      string
	Width     int
	Height    int
}

func (p *PhotoFrame) renderStage(ctx context.Context, s render.Snapshot, n int) ([]<-chan *image.RGBA, <-chan error, error) {
	outs := make([]chan *image.RGBA, n)
	for i := range outs {
		outs[i] = make(chan *image.RGBA, 1)
	}
	errc := make(chan error, 1)
	go func() {
		defer func() {
			for _, out := range outs {
				close(out)
			}
		}()
		defer close(errc)

		if err := ctx.Err(); err != nil {
			errc <- err
			return
		}

		start := time.Now()
		m := render.Render(s)
		p.logger.Printf("Rendered %dx%d crop in %s\n", m.Bounds().Dx(), m.Bounds().Dy(), time.Since(start))

		for _, out := range outs {
			select {
			case out <- m:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()

	ro := make([]<-chan *image.RGBA, n)
	for i := range outs {
		ro[i] = outs[i]
	}

	return ro, errc, nil
}

func (p *PhotoFrame) bitmapWorker(ctx context.Context, in <-chan *image.RGBA) (<-chan []byte, <-chan error, error) {
	out := make(chan []byte, 1)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for m := range in {
			start := time.Now()
			dithered, err := p.ditherer.Dither(m, palette.FloydSteinberg, palette.Perceptual)
			if err != nil {
				errc <- fmt.Errorf("photoframe: dither: %w", err)
				return
			}
			p.logger.Printf("Dithered in %s\n", time.Since(start))

			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}

			remapped, err := p.ditherer.Remap(dithered, palette.Perceptual, p.colors)
			if err != nil {
				errc <- fmt.Errorf("photoframe: remap: %w", err)
				return
			}

			b, err := bmp.Marshal(remapped)
			if err != nil {
				errc <- err
				return
			}

			out <- b
		}
	}()
	return out, errc, nil
}

func (p *PhotoFrame) thumbnailWorker(ctx context.Context, in <-chan *image.RGBA) (<-chan []byte, <-chan error, error) {
	out := make(chan []byte, 1)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for m := range in {
			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}

			b, err := thumbnail.Marshal(m)
			if err != nil {
				errc <- err
				return
			}

			out <- b
		}
	}()
	return out, errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Export renders the snapshot and converts it to a device bitmap. The
// thumbnail is produced at the same time from the rendered image.
func (p *PhotoFrame) Export(ctx context.Context, s render.Snapshot) (*Export, error) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	var errcList []<-chan error

	rendered, errc, err := p.renderStage(ctx, s, 2)
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	bitmaps, errc, err := p.bitmapWorker(ctx, rendered[0])
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	thumbnails, errc, err := p.thumbnailWorker(ctx, rendered[1])
	if err != nil {
		return nil, err
	}
	errcList = append(errcList, errc)

	if err := waitForPipeline(errcList...); err != nil {
		return nil, err
	}

	b, ok := <-bitmaps
	if !ok {
		return nil, errCancelled
	}

	e := &Export{
		Bitmap:    b,
		Thumbnail: <-thumbnails,
		SHA1:      checksum(b),
		Width:     render.Width,
		Height:    render.Height,
	}

	p.logger.Printf("Exported %d byte bitmap with SHA1 %s\n", len(e.Bitmap), e.SHA1)

	return e, nil
}

// Upload sends the export to the device and records it in the history.
func (p *PhotoFrame) Upload(ctx context.Context, e *Export) (string, error) {
	if p.uploader == nil {
		return "", errNoUploader
	}

	url, err := p.uploader.Upload(ctx, e.Bitmap)
	if err != nil {
		return "", err
	}
	p.logger.Printf("Uploaded %s to %s\n", e.SHA1, url)

	if p.history != nil {
		id, err := p.history.Add(Record{
			SHA1:      e.SHA1,
			Device:    p.device,
			URL:       url,
			Width:     e.Width,
			Height:    e.Height,
			Thumbnail: e.Thumbnail,
		})
		if err != nil {
			return url, err
		}
		p.logger.Printf("Recorded upload %d\n", id)
	}

	return url, nil
}
