package fight

import (
	"github.com/younwookim/brawl/internal/domain/entity"
	"github.com/younwookim/brawl/internal/domain/geom"
)

// camera maps stage units to screen pixels. The stage centre sits in the
// middle of the screen and height grows upwards from the floor line.
type camera struct {
	center float64
	scale  float64
	halfW  float64
	floor  float64
}

func newCamera(stage *entity.Stage, screenW, screenH int, pixelsPerUnit float64) camera {
	return camera{
		center: (stage.Left + stage.Right) / 2,
		scale:  pixelsPerUnit,
		halfW:  float64(screenW) / 2,
		floor:  float64(screenH) - 30,
	}
}

// x returns the screen column of stage position x
func (c camera) x(x float64) float64 {
	return (x-c.center)*c.scale + c.halfW
}

// y returns the screen row of height y
func (c camera) y(y float64) float64 {
	return c.floor - y*c.scale
}

// rect returns the screen rectangle of a box in stage coordinates
func (c camera) rect(b geom.Box) (x, y, w, h float64) {
	return c.x(b.X), c.y(b.YEnd), (b.XEnd - b.X) * c.scale, (b.YEnd - b.Y) * c.scale
}
