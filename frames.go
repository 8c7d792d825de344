package polaris

import (
	"context"
	"fmt"
	_ "image/jpeg" // frame sequences ship as JPEG
	_ "image/png"
	"log/slog"
	"path"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/sync/errgroup"
)

// ImageLoader decodes one frame image. The default is
// ebitenutil.NewImageFromFile.
type ImageLoader func(path string) (*ebiten.Image, error)

// LoadImageFile is the default ImageLoader.
func LoadImageFile(p string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(p)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// FrameSequenceConfig locates the frame images on disk.
type FrameSequenceConfig struct {
	Dir    string
	Prefix string
	Ext    string
	Total  int
	// Parallelism bounds concurrent decodes. Defaults to 8.
	Parallelism int
}

type frameResult struct {
	index int // 1-based
	img   *ebiten.Image
	err   error
}

// FrameSequence preloads the scrubber's images in the background and folds
// completions into the tick that polls it. Failed frames are logged and never
// counted, so a single failure keeps the sequence from becoming ready.
type FrameSequence struct {
	config FrameSequenceConfig
	loader ImageLoader
	log    *slog.Logger

	images   []*ebiten.Image
	have     []bool
	loaded   int
	failed   int
	results  chan frameResult
	cancel   context.CancelFunc
	started  bool
	disposed bool
}

// NewFrameSequence creates an idle sequence. Call Preload to start loading.
func NewFrameSequence(cfg FrameSequenceConfig, loader ImageLoader, logger *slog.Logger) *FrameSequence {
	if cfg.Total < 1 {
		cfg.Total = 1
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 8
	}
	if loader == nil {
		loader = LoadImageFile
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FrameSequence{
		config:  cfg,
		loader:  loader,
		log:     logger.With("component", "frames"),
		images:  make([]*ebiten.Image, cfg.Total),
		have:    make([]bool, cfg.Total),
		results: make(chan frameResult, cfg.Total),
	}
}

// FramePath returns the file path of frame i (1-based): dir/prefix + i as a
// zero-padded 3-digit number + ext.
func (s *FrameSequence) FramePath(i int) string {
	return path.Join(s.config.Dir, fmt.Sprintf("%s%03d%s", s.config.Prefix, i, s.config.Ext))
}

// Total returns the number of frames in the sequence.
func (s *FrameSequence) Total() int {
	return s.config.Total
}

// Preload starts decoding every frame. It returns immediately; results are
// picked up by Poll. Calling Preload twice is a no-op.
func (s *FrameSequence) Preload(ctx context.Context) {
	if s.started || s.disposed {
		return
	}
	s.started = true
	ctx, s.cancel = context.WithCancel(ctx)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallelism)
	go func() {
		for i := 1; i <= s.config.Total; i++ {
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				img, err := s.loader(s.FramePath(i))
				// results is buffered to Total, so this never blocks.
				s.results <- frameResult{index: i, img: img, err: err}
				return nil
			})
		}
		_ = g.Wait()
	}()
}

// Poll drains finished loads without blocking and returns the loaded count.
func (s *FrameSequence) Poll() int {
	if s.disposed {
		return 0
	}
	for {
		select {
		case r := <-s.results:
			if r.err != nil {
				s.failed++
				s.log.Error("frame load failed", "frame", r.index, "path", s.FramePath(r.index), "err", r.err)
				continue
			}
			if !s.have[r.index-1] {
				s.have[r.index-1] = true
				s.images[r.index-1] = r.img
				s.loaded++
			}
		default:
			return s.loaded
		}
	}
}

// Loaded returns the number of frames decoded so far.
func (s *FrameSequence) Loaded() int {
	return s.loaded
}

// Failed returns the number of frames that could not be loaded.
func (s *FrameSequence) Failed() int {
	return s.failed
}

// Ready reports whether every frame has loaded.
func (s *FrameSequence) Ready() bool {
	return s.loaded >= s.config.Total
}

// Image returns the image for frame i (1-based), or nil if it has not loaded.
func (s *FrameSequence) Image(i int) *ebiten.Image {
	if i < 1 || i > len(s.images) {
		return nil
	}
	return s.images[i-1]
}

// Dispose cancels outstanding loads and releases decoded images. Loads that
// finish afterwards are discarded.
func (s *FrameSequence) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	if s.cancel != nil {
		s.cancel()
	}
	for i, img := range s.images {
		if img != nil {
			img.Deallocate()
			s.images[i] = nil
		}
	}
}
