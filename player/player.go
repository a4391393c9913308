// Package player plays a kinetic scene in an ebiten window.
//
// The clock advances one frame per ebiten tick, with TPS set to the clock's
// frame rate, so playback runs at the authored speed.
//
//	scene := kinetic.NewScene(30, 4)
//	// ... add objects and compose animations ...
//	if err := player.Run(scene, player.RunConfig{Title: "demo", Autoplay: true}); err != nil {
//		log.Fatal(err)
//	}
package player

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/kinetic"
)

// RunConfig configures a Player.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height are the logical screen size. Default 640x480.
	Width, Height int
	// Background fills the screen before each draw. Zero means black.
	Background kinetic.Color
	// Camera, if set, is the camera object the scene is viewed through.
	// Without one the scene origin is drawn at the screen centre.
	Camera *kinetic.Object
	// Autoplay starts the clock when the player is created.
	Autoplay bool
	// Controls enables keyboard transport: Space toggles playback, the
	// arrow keys step one frame, Home seeks to frame 0, M jumps to the
	// next marker and P takes a screenshot.
	Controls bool
	// ShowFrame prints the current frame and marker in the top-left corner.
	ShowFrame bool
	// ShowFPS adds the measured FPS and TPS below the frame line.
	ShowFPS bool
	// ScreenshotDir is where P saves the current frame as a PNG. Default
	// "screenshots".
	ScreenshotDir string
	// Draw replaces the built-in renderer.
	Draw func(screen *ebiten.Image, s *kinetic.Scene)
}

// Player implements ebiten.Game for a scene.
type Player struct {
	scene    *kinetic.Scene
	cfg      RunConfig
	renderer Renderer
	fps      fpsMeter

	screenshotQueue []string
}

// New creates a player for scene.
func New(scene *kinetic.Scene, cfg RunConfig) *Player {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	if cfg.Background == (kinetic.Color{}) {
		cfg.Background = kinetic.ColorBlack
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.Autoplay {
		scene.Clock().Play()
	}
	return &Player{scene: scene, cfg: cfg}
}

// Scene returns the scene being played.
func (p *Player) Scene() *kinetic.Scene {
	return p.scene
}

// View returns the camera view covering the whole screen.
func (p *Player) View() kinetic.View {
	return kinetic.View{
		Camera:   p.cfg.Camera,
		Viewport: kinetic.Rect{Width: float64(p.cfg.Width), Height: float64(p.cfg.Height)},
	}
}

// Update implements ebiten.Game.
func (p *Player) Update() error {
	if p.cfg.Controls {
		p.handleKeys()
	}
	p.scene.Clock().Update()
	if p.cfg.ShowFPS {
		p.fps.update(1 / p.scene.Clock().FPS())
	}
	return nil
}

func (p *Player) handleKeys() {
	clk := p.scene.Clock()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		clk.Toggle()
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		clk.Pause()
		clk.SetFrame(min(clk.CurrentFrame()+1, clk.TotalFrames()-1))
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		clk.Pause()
		clk.SetFrame(max(clk.CurrentFrame()-1, 0))
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		clk.SetFrame(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		if m, ok := clk.NextMarker(clk.CurrentFrame()); ok {
			clk.SetFrame(m.Frame)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		p.Screenshot(p.frameLabel())
	}
}

// Draw implements ebiten.Game.
func (p *Player) Draw(screen *ebiten.Image) {
	screen.Fill(p.cfg.Background)
	if p.cfg.Draw != nil {
		p.cfg.Draw(screen, p.scene)
	} else {
		p.renderer.DrawScene(screen, p.scene, p.View())
	}
	if p.cfg.ShowFrame || p.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, p.status())
	}
	p.flushScreenshots(screen)
}

func (p *Player) status() string {
	var s string
	if p.cfg.ShowFrame {
		s = p.frameStatus()
	}
	if p.cfg.ShowFPS && p.fps.text != "" {
		if s != "" {
			s += "\n"
		}
		s += p.fps.text
	}
	return s
}

func (p *Player) frameStatus() string {
	clk := p.scene.Clock()
	s := fmt.Sprintf("frame %d/%d  %.2fs", clk.CurrentFrame(), clk.TotalFrames()-1, clk.Seconds())
	if m, ok := clk.PrevMarker(clk.CurrentFrame() + 1); ok {
		s += "  [" + m.Label + "]"
	}
	if !clk.IsPlaying() {
		s += "  paused"
	}
	return s
}

// Layout implements ebiten.Game.
func (p *Player) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.cfg.Width, p.cfg.Height
}

// Run opens a window and plays scene until the window is closed.
func Run(scene *kinetic.Scene, cfg RunConfig) error {
	p := New(scene, cfg)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(p.cfg.Width, p.cfg.Height)
	ebiten.SetTPS(int(math.Max(1, math.Round(scene.Clock().FPS()))))
	scene.Clock().Refresh()
	return ebiten.RunGame(p)
}
