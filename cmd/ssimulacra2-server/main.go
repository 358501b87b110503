// Command ssimulacra2-server exposes SSIMULACRA2 scoring over HTTP:
// POST a reference and a distorted image as multipart form fields, get a
// JSON score back. Intended for services that need to compare images
// from other languages or pipelines without linking this module directly.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pbnjay/memory"

	"github.com/imazen/ssimulacra2"
	"github.com/imazen/ssimulacra2/internal/imageio"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	cacheSize := flag.Int("cache-size", defaultCacheSize(), "number of reference pyramids to keep cached")
	flag.Parse()

	s := &server{cache: ssimulacra2.NewReferenceCache(*cacheSize)}

	r := gin.Default()
	r.POST("/compare", s.handleCompare)
	r.GET("/healthz", s.handleHealthz)

	log.Printf("ssimulacra2-server listening on %s (cache size %d)", *addr, *cacheSize)
	if err := r.Run(*addr); err != nil {
		log.Fatal(err)
	}
}

// defaultCacheSize scales the reference cache to available system memory
// so a modest host doesn't get pushed into swap by cached pyramids; each
// cached Reference's footprint is dominated by its top scale's float32
// planes, so this is a coarse heuristic, not an exact budget.
func defaultCacheSize() int {
	const bytesPerEntry = 64 << 20 // 64MiB, a generous upper bound for one reference pyramid
	total := memory.TotalMemory()
	if total == 0 {
		return 16
	}
	n := int(total / 8 / bytesPerEntry)
	if n < 4 {
		return 4
	}
	if n > 256 {
		return 256
	}
	return n
}

type server struct {
	cache *ssimulacra2.ReferenceCache
}

func (s *server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cached_references": s.cache.Len()})
}

type compareResponse struct {
	Score     float64 `json:"score"`
	NumScales int     `json:"num_scales"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
}

func (s *server) handleCompare(c *gin.Context) {
	refImg, err := readUploadedImage(c, "reference")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	distImg, err := readUploadedImage(c, "distorted")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rb := refImg.Bounds()
	if c.Query("resize_to_match") == "true" {
		distImg = imageio.ResizeToMatch(distImg, rb.Dx(), rb.Dy())
	}

	refInput, err := imageio.ToInput(refImg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	distInput, err := imageio.ToInput(distImg)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := ssimulacra2.DefaultConfig()
	reference, err := s.cache.GetOrBuild(refInput, cfg)
	if err != nil {
		respondMetricError(c, err)
		return
	}
	score, err := reference.Compare(distInput)
	if err != nil {
		respondMetricError(c, err)
		return
	}

	c.JSON(http.StatusOK, compareResponse{
		Score:     score,
		NumScales: reference.NumScales(),
		Width:     reference.Width(),
		Height:    reference.Height(),
	})
}

func respondMetricError(c *gin.Context, err error) {
	status := http.StatusUnprocessableEntity
	if se, ok := err.(*ssimulacra2.Error); ok {
		switch se.Kind {
		case ssimulacra2.InvalidDimensions, ssimulacra2.TooSmall, ssimulacra2.DimensionMismatch:
			status = http.StatusBadRequest
		}
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func readUploadedImage(c *gin.Context, field string) (image.Image, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %q form field: %w", field, err)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return imageio.Decode(f, fh.Filename)
}
