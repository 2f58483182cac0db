package canopy

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// baseDPI is the DPI of a display with a device scale factor of 1.
const baseDPI = 96

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// ShowFPS overlays the actual FPS and TPS in the top-left corner.
	ShowFPS bool
	// ExitWhenScriptDone ends the loop once an attached TestRunner is done.
	ExitWhenScriptDone bool
	// OnUpdate runs after every manager update. A non-nil error ends the loop
	// and is returned from Run; return ebiten.Termination for a clean exit.
	OnUpdate func(m *Manager) error
}

// gameShell adapts a Manager to ebiten.Game.
type gameShell struct {
	m   *Manager
	cfg RunConfig
	dpi float64
}

func (g *gameShell) Update() error {
	if dpi := ebiten.Monitor().DeviceScaleFactor() * baseDPI; dpi != g.dpi {
		g.dpi = dpi
		g.m.SetDPI(dpi)
		logger.WithField("dpi", dpi).Debug("canopy: display DPI changed")
	}
	g.m.Update()
	if g.cfg.OnUpdate != nil {
		if err := g.cfg.OnUpdate(g.m); err != nil {
			return err
		}
	}
	if g.cfg.ExitWhenScriptDone && g.m.runner != nil && g.m.runner.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.m.Draw(screen)
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.m.SetScreenSize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a window and drives m from ebiten's game loop until the window
// closes or an update returns an error. Without an input source the manager
// polls ebiten directly.
func Run(m *Manager, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		size := m.ScreenSize()
		cfg.Width, cfg.Height = int(size.X), int(size.Y)
	}
	if m.input == nil {
		m.SetInput(NewEbitenInput())
	}
	m.SetScreenSize(float64(cfg.Width), float64(cfg.Height))

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	logger.WithFields(logrus.Fields{
		"title": cfg.Title, "width": cfg.Width, "height": cfg.Height,
	}).Info("canopy: starting")
	return errors.Wrap(ebiten.RunGame(&gameShell{m: m, cfg: cfg}), "run game")
}
