package game

import (
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/estomania/common"
	"github.com/Carmen-Shannon/estomania/pkg/logger"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	nameTagWidth    = 256
	nameTagHeight   = 128
	nameTagFontSize = 20
)

var (
	nameTagColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 242}
	nameTagBaseline = fixed.P(10, 50)
)

var parseNameTagFont = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// RenderNameTag rasterises text into a transparent 256x128 texture in bold 20px white at 95% opacity,
// with the baseline starting at (10, 50).
//
// Parameters:
//   - text: the label to draw
//
// Returns:
//   - *common.Texture: the rendered label
//   - error: error if the font cannot be loaded
func RenderNameTag(text string) (*common.Texture, error) {
	f, err := parseNameTagFont()
	if err != nil {
		return nil, fmt.Errorf("parse name tag font: %w", err)
	}
	// A face is not safe for concurrent use.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    nameTagFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create name tag face: %w", err)
	}
	defer face.Close()

	img := image.NewRGBA(image.Rect(0, 0, nameTagWidth, nameTagHeight))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(nameTagColor),
		Face: face,
		Dot:  nameTagBaseline,
	}
	d.DrawString(text)
	return common.NewTextureFromImage(img, text)
}

// nameTagCache renders each distinct label once. Prepare fans rendering out over a worker pool so a
// snapshot with many players does not rasterise on the frame loop one label at a time.
type nameTagCache struct {
	mu       sync.Mutex
	textures map[string]*common.Texture
	pool     worker.DynamicWorkerPool
	taskID   int
}

func newNameTagCache(workers int) *nameTagCache {
	if workers < 1 {
		workers = 1
	}
	return &nameTagCache{
		textures: make(map[string]*common.Texture),
		pool:     worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
	}
}

// Prepare renders every label not already cached and waits for them to finish.
func (c *nameTagCache) Prepare(labels []string) {
	c.mu.Lock()
	pending := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		if _, ok := c.textures[label]; !ok {
			pending[label] = struct{}{}
		}
	}
	c.mu.Unlock()

	var wg sync.WaitGroup
	for label := range pending {
		wg.Add(1)
		label := label
		id := c.taskID
		c.taskID++
		c.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				tex, err := RenderNameTag(label)
				if err != nil {
					logger.Component("game").WithError(err).WithField("label", label).Warn("name tag render failed")
					return nil, err
				}
				c.store(label, tex)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// Texture returns the cached texture for label, rendering it on the calling goroutine if needed.
func (c *nameTagCache) Texture(label string) (*common.Texture, error) {
	c.mu.Lock()
	tex, ok := c.textures[label]
	c.mu.Unlock()
	if ok {
		return tex, nil
	}
	tex, err := RenderNameTag(label)
	if err != nil {
		return nil, err
	}
	c.store(label, tex)
	return tex, nil
}

func (c *nameTagCache) store(label string, tex *common.Texture) {
	c.mu.Lock()
	c.textures[label] = tex
	c.mu.Unlock()
}
