// Canopy is a runnable demo of the canopy UI core: a centered window with
// focusable buttons, tooltips, a live counter and a slide-in tween.
// Tab / Shift+Tab and the arrow keys move focus, Enter presses the focused
// button and Escape returns focus to the previous one.
package main

import (
	"fmt"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/canopy"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tanema/gween/ease"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()

	// base application info
	app.Name = "canopy"
	app.Version = "0.1.0"
	app.Usage = "retained-mode UI demo"

	// flags
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load configuration from `FILE`",
		},
		cli.StringFlag{
			Name:  "script, s",
			Usage: "run the JSON test script `FILE`, then exit",
		},
		cli.StringFlag{
			Name:  "font",
			Usage: "draw text with the BMFont `FILE` (.fnt) instead of the built-in face",
		},
		cli.StringFlag{
			Name:  "font-page",
			Usage: "page texture `FILE` for --font",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging and frame stats",
		},
		cli.BoolFlag{
			Name:  "fps",
			Usage: "show the FPS overlay",
		},
	}

	app.Action = serve
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	log.SetFormatter(&log.TextFormatter{DisableColors: true})

	viper.SetEnvPrefix("canopy")
	viper.AutomaticEnv()

	cfg := canopy.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := canopy.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.Bool("debug") || viper.GetBool("debug") {
		cfg.Debug = true
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if len(cfg.ScreenScales) == 0 {
		// 720p is the reference layout; 4K doubles it.
		cfg.ScreenScales = []canopy.ScaleBreakpoint{
			{Key: 1280 * 720, Scale: 1},
			{Key: 3840 * 2160, Scale: 2},
		}
	}

	m := canopy.NewManager(cfg)
	font, err := loadFont(c.String("font"), c.String("font-page"))
	if err != nil {
		return err
	}
	m.SetFont(font)
	d := newDemo(m)

	rc := canopy.RunConfig{
		Title:     "Canopy",
		Width:     cfg.ScreenWidth,
		Height:    cfg.ScreenHeight,
		Resizable: true,
		ShowFPS:   c.Bool("fps"),
		OnUpdate:  d.update,
	}
	if path := c.String("script"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		runner, err := canopy.LoadTestScript(data)
		if err != nil {
			return err
		}
		m.SetTestRunner(runner)
		rc.ExitWhenScriptDone = true
	}
	defer m.Close()
	return canopy.Run(m, rc)
}

// loadFont returns the BMFont at fntPath, or the built-in face when no path
// is given.
func loadFont(fntPath, pagePath string) (canopy.GlyphSource, error) {
	if fntPath == "" {
		return canopy.NewBasicFont(nil), nil
	}
	if pagePath == "" {
		return nil, fmt.Errorf("--font %s needs --font-page", fntPath)
	}
	data, err := os.ReadFile(fntPath)
	if err != nil {
		return nil, err
	}
	page, _, err := ebitenutil.NewImageFromFile(pagePath)
	if err != nil {
		return nil, err
	}
	font, err := canopy.LoadBitmapFont(data, page)
	if err != nil {
		return nil, err
	}
	log.WithField("font", fntPath).Info("canopy: loaded bitmap font")
	return font, nil
}

// demo holds the nodes the update loop touches and the active tweens.
type demo struct {
	m       *canopy.Manager
	window  *canopy.Node
	counter *canopy.Node
	clicks  int
	tweens  []*canopy.TweenGroup
}

func newDemo(m *canopy.Manager) *demo {
	d := &demo{m: m}
	insertMaterials(m)

	d.window = m.NewNode("window", canopy.Pixels(0, 0), canopy.Pixels(360, 260),
		canopy.DefaultFlags(), &canopy.Panel{Material: "window", ClipChildren: true})
	d.window.SetAnchors(canopy.AnchorCenter, canopy.AnchorCenter)
	m.Append(nil, d.window)
	m.InsertNamed(d.window)

	title := m.NewNode("title", canopy.Pixels(0, 12), canopy.Pixels(0, 20),
		canopy.DefaultFlags(), &canopy.Label{Text: "Canopy"})
	title.SetAnchors(canopy.AnchorTopCenter, canopy.AnchorTopCenter)
	f := title.Flags()
	f.AutoWidth = true
	title.SetFlags(f)
	m.Append(d.window, title)

	sep := m.NewNode("separator", canopy.Pixels(0, 40), canopy.Dim{PX: 0.9, OY: 2},
		canopy.DefaultFlags(), &canopy.Line{Material: "separator", Width: 2})
	sep.SetAnchors(canopy.AnchorTopCenter, canopy.AnchorTopCenter)
	m.Append(d.window, sep)

	d.counter = m.NewNode("counter", canopy.Pixels(0, 56), canopy.Dim{PX: 1, OY: 20},
		canopy.Flags{Visible: true, Kind: canopy.KindAlignCenter}, &canopy.Label{Text: "clicks: 0"})
	d.counter.SetAnchors(canopy.AnchorTopCenter, canopy.AnchorTopCenter)
	m.Append(d.window, d.counter)
	m.InsertNamed(d.counter)

	buttons := []struct {
		name, label, tooltip string
		fn                   canopy.EventFunc
	}{
		{"count", "Count", "Add one to the counter", d.onCount},
		{"reset", "Reset", "Set the counter back to zero", d.onReset},
		{"slide", "Slide", "Slide the window in from the left", d.onSlide},
	}
	for i, b := range buttons {
		n := newButton(m, b.name, b.label, b.tooltip, float64(100+i*44))
		m.Append(d.window, n)
		m.InsertNamed(n)
		m.RegisterEventByName(b.name, canopy.EventPressedLeft, b.fn, nil)
	}
	m.SetFocused(m.GetNamedUI("count"))
	return d
}

func insertMaterials(m *canopy.Manager) {
	m.InsertMaterial("window", canopy.Material{
		Fill:   canopy.FillVerticalGradient,
		Color1: canopy.Color{R: 0.18, G: 0.2, B: 0.26, A: 1},
		Color2: canopy.Color{R: 0.1, G: 0.11, B: 0.15, A: 1},
	})
	m.InsertMaterial("button", canopy.SolidMaterial(canopy.Color{R: 0.26, G: 0.3, B: 0.4, A: 1}))
	m.InsertMaterial("button_hover", canopy.SolidMaterial(canopy.Color{R: 0.33, G: 0.4, B: 0.55, A: 1}))
	m.InsertMaterial("button_focus", canopy.SolidMaterial(canopy.Color{R: 0.3, G: 0.55, B: 0.75, A: 1}))
	m.InsertMaterial("separator", canopy.Material{
		Fill:   canopy.FillHorizontalGradient,
		Color1: canopy.Color{R: 1, G: 1, B: 1, A: 0},
		Color2: canopy.Color{R: 1, G: 1, B: 1, A: 0.6},
	})
	m.InsertMaterial(canopy.TooltipMaterial, canopy.SolidMaterial(canopy.Color{R: 0.05, G: 0.05, B: 0.05, A: 0.9}))
}

// newButton builds a focusable panel with a centered label child. The panel
// switches material while focused.
func newButton(m *canopy.Manager, name, label, tooltip string, y float64) *canopy.Node {
	panel := &canopy.Panel{Material: "button", HoverMaterial: "button_hover"}
	flags := canopy.Flags{
		ParentAnchor: canopy.AnchorTopCenter,
		LocalAnchor:  canopy.AnchorTopCenter,
		Visible:      true,
		Focusable:    true,
		Tabbable:     true,
	}
	n := m.NewNode(name, canopy.Pixels(0, y), canopy.Pixels(160, 36), flags, panel)
	n.SetTooltip(tooltip)

	text := m.NewNode(name+".label", canopy.Dim{}, canopy.Percent(1, 1),
		canopy.Flags{Visible: true, IgnoreOverCount: true, Kind: canopy.KindAlignCenter},
		&canopy.Label{Text: label})
	m.Append(n, text)

	n.RegisterEvent(canopy.EventFocusGained, func(*canopy.Node, canopy.EventCode, any) {
		panel.Material = "button_focus"
	}, nil)
	n.RegisterEvent(canopy.EventFocusLost, func(*canopy.Node, canopy.EventCode, any) {
		panel.Material = "button"
	}, nil)
	return n
}

func (d *demo) setClicks(v int) {
	d.clicks = v
	if l, ok := d.counter.Widget().(*canopy.Label); ok {
		l.SetText(d.counter, fmt.Sprintf("clicks: %d", v))
	}
}

func (d *demo) onCount(*canopy.Node, canopy.EventCode, any) { d.setClicks(d.clicks + 1) }

func (d *demo) onReset(*canopy.Node, canopy.EventCode, any) { d.setClicks(0) }

func (d *demo) onSlide(*canopy.Node, canopy.EventCode, any) {
	d.window.SetPosition(canopy.Pixels(-d.m.ScreenSize().X, 0))
	d.tweens = append(d.tweens, canopy.TweenOffset(d.window, 0, 0, 0.6, ease.OutCubic))
}

func (d *demo) update(m *canopy.Manager) error {
	dt := float32(1 / float64(ebiten.TPS()))
	live := d.tweens[:0]
	for _, g := range d.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	d.tweens = live
	return nil
}
