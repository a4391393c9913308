package player

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// fpsMeter caches ebiten's measured frame and tick rates. The text is
// refreshed about every half second so it stays readable.
type fpsMeter struct {
	elapsed float64
	text    string
}

func (m *fpsMeter) update(dt float64) {
	m.elapsed += dt
	if m.text != "" && m.elapsed < 0.5 {
		return
	}
	m.elapsed = 0
	m.text = fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}
