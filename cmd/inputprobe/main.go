// Package main is a terminal input probe: it feeds tcell key and mouse
// events through the full dispatch path and prints the resulting actions,
// useful for checking bindings and thresholds without a graphical host.
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Scoutink/3d-cms-sub000/internal/action"
	"github.com/Scoutink/3d-cms-sub000/internal/event"
	"github.com/Scoutink/3d-cms-sub000/internal/hittest"
	"github.com/Scoutink/3d-cms-sub000/internal/input"
	"github.com/Scoutink/3d-cms-sub000/internal/input/binding"
	"github.com/Scoutink/3d-cms-sub000/internal/input/driver"
	"github.com/Scoutink/3d-cms-sub000/internal/input/raw"
	"github.com/Scoutink/3d-cms-sub000/internal/input/source"
)

const historyLines = 20

type probe struct {
	mu    sync.Mutex
	lines []string
}

func (p *probe) add(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = append(p.lines, line)
	if len(p.lines) > historyLines {
		p.lines = p.lines[len(p.lines)-historyLines:]
	}
}

func (p *probe) snapshot() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.lines))
	copy(out, p.lines)
	return out
}

func main() {
	logFile, err := os.OpenFile("inputprobe.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := zerolog.New(logFile).With().Timestamp().Logger()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()

	width, height := screen.Size()
	picker := hittest.NewPicker(width, height)
	// A target cell block so object-vs-background conditions can be probed.
	if err := picker.Add("target", 4, 4, 20, 6, 1); err != nil {
		fmt.Fprintf(os.Stderr, "picker: %v\n", err)
		os.Exit(1)
	}

	mgrCfg := input.DefaultConfig()
	mgrCfg.Logger = logger
	mgr := input.NewManager(mgrCfg)
	defer mgr.Close()

	keyboard := source.NewKeyboard(source.DefaultKeyboardConfig())
	pointerCfg := source.DefaultPointerConfig()
	pointerCfg.HitTester = picker
	// Terminal cells are coarse; one cell of travel is already deliberate.
	pointerCfg.DragThresholdPx = 1
	pointer := source.NewPointer(pointerCfg)

	if err := mgr.RegisterSource(source.KeyboardName, keyboard); err != nil {
		logger.Fatal().Err(err).Msg("register keyboard")
	}
	if err := mgr.RegisterSource(source.PointerName, pointer); err != nil {
		logger.Fatal().Err(err).Msg("register pointer")
	}

	ctx := binding.NewContext("probe",
		binding.NewBinding(raw.InputMouseLeftClick, "select").WithCondition(binding.CondTargetIsObject),
		binding.NewBinding(raw.InputMouseLeftClick, "deselect").WithCondition(binding.CondTargetIsBackground),
		binding.NewBinding(raw.InputMouseLeftDrag, "drag"),
		binding.NewBinding(raw.InputWheel, "scroll"),
		binding.NewBinding("KeyEscape", "quit").WithPhase(binding.PhasePressed),
	)
	if err := mgr.RegisterContext(ctx); err != nil {
		logger.Fatal().Err(err).Msg("register context")
	}
	mgr.SetContext("probe")

	p := &probe{}
	quit := make(chan struct{})
	var quitOnce sync.Once

	if _, err := mgr.On(event.TopicAction, func(_ string, payload any) {
		inst, ok := payload.(action.Instance)
		if !ok {
			return
		}
		line := fmt.Sprintf("%-16s state=%-9s value=%.2f", inst.Name, inst.State, inst.Value)
		if inst.Hit != nil && inst.Hit.Hit {
			line += " target=" + inst.Hit.TargetID
		}
		p.add(line)
		if inst.Name == "quit" {
			quitOnce.Do(func() { close(quit) })
		}
	}); err != nil {
		logger.Fatal().Err(err).Msg("subscribe")
	}

	d := driver.NewTcell(keyboard, pointer)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	style := tcell.StyleDefault
	target := tcell.StyleDefault.Background(tcell.ColorDarkBlue)
	for {
		select {
		case <-quit:
			return
		case ev := <-events:
			if ev == nil {
				return
			}
			if resize, ok := ev.(*tcell.EventResize); ok {
				resize.Size()
				screen.Sync()
				continue
			}
			d.HandleEvent(ev)
		}

		screen.Clear()
		drawText(screen, 0, 0, style, "inputprobe: click/drag the block, scroll, Esc quits")
		for y := 4; y < 10; y++ {
			for x := 4; x < 24; x++ {
				screen.SetContent(x, y, ' ', nil, target)
			}
		}
		for i, line := range p.snapshot() {
			drawText(screen, 0, 12+i, style, line)
		}
		screen.Show()
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range text {
		s.SetContent(x+i, y, r, nil, style)
	}
}
