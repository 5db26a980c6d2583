// Package main is an interactive demonstration of the input subsystem: a
// small scene of draggable boxes driven by the ebiten host, with view and
// edit binding contexts, a blocking UI layer toggle, and an on-screen
// action log.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"

	"github.com/Scoutink/3d-cms-sub000/internal/action"
	"github.com/Scoutink/3d-cms-sub000/internal/config"
	"github.com/Scoutink/3d-cms-sub000/internal/event"
	"github.com/Scoutink/3d-cms-sub000/internal/hittest"
	"github.com/Scoutink/3d-cms-sub000/internal/input"
	"github.com/Scoutink/3d-cms-sub000/internal/input/binding"
	"github.com/Scoutink/3d-cms-sub000/internal/input/driver"
	"github.com/Scoutink/3d-cms-sub000/internal/input/gesture"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
	"github.com/Scoutink/3d-cms-sub000/internal/input/source"
)

const (
	screenWidth  = 960
	screenHeight = 540
	logLines     = 8
)

// BoxData is the scene component: a colored rectangle at a depth.
type BoxData struct {
	ID    string
	X, Y  float64
	W, H  float64
	Depth float64
	Color color.RGBA
}

// Box is the donburi component type for scene rectangles.
var Box = donburi.NewComponentType[BoxData]()

// selection tracks the selected object set and satisfies the manager's
// selection collaborator.
type selection struct {
	mu  sync.Mutex
	ids []string
}

func (s *selection) HasActiveSelection() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids) > 0
}

func (s *selection) CurrentSelection() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *selection) set(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = ids
}

// game wires the subsystem into the ebiten loop.
type game struct {
	world    donburi.World
	picker   *hittest.Picker
	manager  *input.Manager
	driver   *driver.Ebiten
	selected *selection

	mu  sync.Mutex
	log []string
}

func (g *game) logf(format string, args ...interface{}) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.log = append(g.log, fmt.Sprintf(format, args...))
	if len(g.log) > logLines {
		g.log = g.log[len(g.log)-logLines:]
	}
}

func (g *game) Update() error {
	g.driver.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	selectedSet := make(map[string]bool)
	for _, id := range g.selected.CurrentSelection() {
		selectedSet[id] = true
	}

	Box.Each(g.world, func(entry *donburi.Entry) {
		box := Box.Get(entry)
		vector.DrawFilledRect(screen, float32(box.X), float32(box.Y), float32(box.W), float32(box.H), box.Color, false)
		if selectedSet[box.ID] {
			vector.StrokeRect(screen, float32(box.X)-2, float32(box.Y)-2, float32(box.W)+4, float32(box.H)+4, 2, color.RGBA{R: 255, G: 255, B: 0, A: 255}, false)
		}
	})

	g.mu.Lock()
	lines := fmt.Sprintf("context: %s   [Tab] switch  [L] toggle ui layer\n", g.manager.ActiveContext())
	for _, l := range g.log {
		lines += l + "\n"
	}
	g.mu.Unlock()
	ebitenutil.DebugPrint(screen, lines)
}

func (g *game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}

// moveSelected translates every selected box by the drag delta.
func (g *game) moveSelected(delta raw.Point) {
	selectedSet := make(map[string]bool)
	for _, id := range g.selected.CurrentSelection() {
		selectedSet[id] = true
	}
	Box.Each(g.world, func(entry *donburi.Entry) {
		box := Box.Get(entry)
		if !selectedSet[box.ID] {
			return
		}
		box.X += delta.X
		box.Y += delta.Y
		_ = g.picker.Move(box.ID, box.X, box.Y)
	})
}

func buildScene(world donburi.World, picker *hittest.Picker) {
	boxes := []BoxData{
		{ID: "crate", X: 180, Y: 140, W: 120, H: 90, Depth: 2, Color: color.RGBA{R: 190, G: 120, B: 60, A: 255}},
		{ID: "pillar", X: 430, Y: 110, W: 70, H: 220, Depth: 3, Color: color.RGBA{R: 110, G: 110, B: 170, A: 255}},
		{ID: "panel", X: 620, Y: 250, W: 180, H: 110, Depth: 1, Color: color.RGBA{R: 90, G: 160, B: 100, A: 255}},
	}
	for _, b := range boxes {
		entry := world.Entry(world.Create(Box))
		*Box.Get(entry) = b
		if err := picker.Add(b.ID, b.X, b.Y, b.W, b.H, b.Depth); err != nil {
			panic(err)
		}
	}
}

func buildContexts(mgr *input.Manager) {
	view := binding.NewContext("view",
		binding.NewBinding(raw.InputMouseLeftClick, "select").WithCondition(binding.CondTargetIsObject),
		binding.NewBinding(raw.InputMouseLeftClick, "deselect").WithCondition(binding.CondTargetIsBackground),
		binding.NewBinding("DoubleClick", "focus-object"),
		binding.NewBinding(raw.InputMouseLeftDrag, "rotate-camera"),
		binding.NewBinding(raw.InputWheel, "zoom"),
		binding.NewBinding("KeyTab", "switch-context").WithPhase(binding.PhasePressed),
		binding.NewBinding("KeyL", "toggle-ui-layer").WithPhase(binding.PhasePressed),
	)
	edit := binding.NewContext("edit",
		binding.NewBinding(raw.InputMouseLeftClick, "select").WithCondition(binding.CondTargetIsObject),
		binding.NewBinding(raw.InputMouseLeftClick, "deselect").WithCondition(binding.CondTargetIsBackground),
		binding.NewBinding(raw.InputMouseLeftDrag, "move-object").WithCondition(binding.CondHasActiveSelection),
		binding.NewBinding(raw.InputMouseLeftDrag, "rotate-camera"),
		binding.NewBinding(raw.InputWheel, "zoom"),
		binding.NewBinding("KeyTab", "switch-context").WithPhase(binding.PhasePressed),
		binding.NewBinding("KeyL", "toggle-ui-layer").WithPhase(binding.PhasePressed),
	)
	if err := mgr.RegisterContext(view); err != nil {
		panic(err)
	}
	if err := mgr.RegisterContext(edit); err != nil {
		panic(err)
	}
}

func main() {
	configPath := flag.String("config", "", "path to TOML configuration")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}
	if level, err := zerolog.ParseLevel(cfg.Log.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	world := donburi.NewWorld()
	picker := hittest.NewPicker(screenWidth, screenHeight)
	buildScene(world, picker)

	selected := &selection{}

	mgrCfg := input.DefaultConfig()
	mgrCfg.Logger = logger
	mgrCfg.Selection = selected
	mgrCfg.DeadZone = cfg.Filter.DeadZone
	mgrCfg.SmoothingFactor = cfg.Filter.SmoothingFactor
	if curve, ok := action.CurveByName(cfg.Filter.ResponseCurve); ok {
		mgrCfg.Curve = curve
	}
	mgr := input.NewManager(mgrCfg)
	defer mgr.Close()

	keyboard := source.NewKeyboard(source.DefaultKeyboardConfig())
	pointerCfg := source.DefaultPointerConfig()
	pointerCfg.HitTester = picker
	pointerCfg.DragThresholdPx = cfg.Pointer.DragThresholdPx
	pointer := source.NewPointer(pointerCfg)
	touchCfg := source.DefaultTouchConfig()
	touchCfg.TapMaxDuration = cfg.Touch.TapMaxDuration()
	touchCfg.LongPressMinDuration = cfg.Touch.LongPressMinDuration()
	touchCfg.SwipeMaxDuration = cfg.Touch.SwipeMaxDuration()
	touchCfg.TapMaxDistancePx = cfg.Touch.TapMaxDistancePx
	touchCfg.SwipeMinDistancePx = cfg.Touch.SwipeMinDistancePx
	touch := source.NewTouch(touchCfg)
	gamepadCfg := source.DefaultGamepadConfig()
	gamepadCfg.Logger = logger
	gamepadCfg.Reader = driver.NewGamepadReader()
	gamepadCfg.PollHz = cfg.Gamepad.PollHz
	gamepad := source.NewGamepad(gamepadCfg)

	for name, src := range map[string]input.Source{
		source.KeyboardName: keyboard,
		source.PointerName:  pointer,
		source.TouchName:    touch,
		source.GamepadName:  gamepad,
	} {
		if err := mgr.RegisterSource(name, src); err != nil {
			logger.Warn().Err(err).Str("source", name).Msg("source not registered")
		}
	}

	mgr.AddRecognizer(gesture.NewDoubleTap(
		raw.InputMouseLeftClick, "DoubleClick",
		cfg.Gesture.DoubleTapWindow(), cfg.Gesture.DoubleTapRadiusPx,
	))

	buildContexts(mgr)
	mgr.SetContext("view")

	g := &game{
		world:    world,
		picker:   picker,
		manager:  mgr,
		selected: selected,
	}
	g.driver = driver.NewEbiten(mgr, keyboard, pointer, touch)

	if _, err := mgr.On(event.TopicAction, func(_ string, payload interface{}) {
		inst, ok := payload.(action.Instance)
		if !ok {
			return
		}
		switch inst.Name {
		case "select":
			if inst.Hit != nil && inst.Hit.Hit {
				selected.set(inst.Hit.TargetID)
				g.logf("select %s", inst.Hit.TargetID)
			}
		case "deselect":
			selected.set()
			g.logf("deselect")
		case "focus-object":
			g.logf("focus %v", selected.CurrentSelection())
		case "move-object":
			if inst.Delta != nil {
				g.moveSelected(*inst.Delta)
			}
		case "switch-context":
			next := "edit"
			if mgr.ActiveContext() == "edit" {
				next = "view"
			}
			mgr.SetContext(next)
			g.logf("context -> %s", next)
		case "toggle-ui-layer":
			if layer, ok := mgr.Layer(input.LayerUI); ok {
				mgr.SetLayerActive(input.LayerUI, !layer.Active)
				g.logf("ui layer active=%v", !layer.Active)
			}
		case "zoom":
			g.logf("zoom %.1f", inst.Value)
		case "rotate-camera":
			// Continuous, too chatty for the log.
		default:
			g.logf("%s (%s)", inst.Name, inst.State)
		}
	}); err != nil {
		logger.Fatal().Err(err).Msg("subscribe failed")
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("inputdemo")
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal().Err(err).Msg("game loop failed")
	}
}
