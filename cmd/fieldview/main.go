// Command fieldview shows the flow field of a level in the terminal. Move
// the target with the arrow keys, toggle a blocking override with space.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"go-horde-survival/internal/config"
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/navigation"
	"go-horde-survival/pkg/tilemap"
)

type viewer struct {
	screen  tcell.Screen
	grid    *tilemap.Grid
	field   *navigation.Manager
	cursor  tilemap.Cell
	target  tilemap.Cell
	lastDur time.Duration
	reached int
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	level := flag.String("level", "", "override the level name")
	flag.Parse()

	if err := run(*configPath, *level); err != nil {
		fmt.Fprintln(os.Stderr, "fieldview:", err)
		os.Exit(1)
	}
}

func run(configPath, level string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if level != "" {
		cfg.Level.Name = level
		cfg.Level.Rows = nil
	}
	rows, err := defs.LevelRows(cfg.Level.Name, cfg.Level.Rows)
	if err != nil {
		return err
	}
	grid, err := tilemap.Parse(rows, tilemap.Connectivity(cfg.Grid.Connectivity))
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	// логи в терминал сломают экран
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	v := &viewer{
		screen: screen,
		grid:   grid,
		field:  navigation.NewManager(grid, logger),
		cursor: grid.PlayerStart,
		target: grid.PlayerStart,
	}
	v.field.AddHook(func(g *tilemap.Grid, f *tilemap.FlowField) {
		v.reached = 0
		for row := 0; row < g.Height; row++ {
			for col := 0; col < g.Width; col++ {
				if _, ok := f.Distance(tilemap.Cell{Col: col, Row: row}); ok {
					v.reached++
				}
			}
		}
	})
	v.recompute()

	for {
		v.draw()
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return nil
			}
		}
	}
}

func (v *viewer) recompute() {
	start := time.Now()
	if v.field.OnTargetMoved(v.target) {
		v.lastDur = time.Since(start)
	}
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	move := tilemap.Cell{}
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		move.Row = -1
	case tcell.KeyDown:
		move.Row = 1
	case tcell.KeyLeft:
		move.Col = -1
	case tcell.KeyRight:
		move.Col = 1
	case tcell.KeyEnter:
		// цель прыгает под курсор
		v.target = v.cursor
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.toggleBlock(v.cursor)
		case 't':
			v.target = v.cursor
		}
	}
	if next := v.cursor.Add(move); v.grid.InBounds(next) {
		v.cursor = next
	}
	v.recompute()
	return true
}

func (v *viewer) toggleBlock(c tilemap.Cell) {
	if v.grid.IsWalkable(c) {
		_ = v.grid.SetOverride(c, tilemap.Blocked)
		return
	}
	v.grid.ClearOverride(c)
}

func (v *viewer) draw() {
	v.screen.Clear()
	f := v.field.Field()
	for row := 0; row < v.grid.Height; row++ {
		for col := 0; col < v.grid.Width; col++ {
			c := tilemap.Cell{Col: col, Row: row}
			glyph := navigation.Glyph(v.grid, f, c)
			style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
			switch glyph {
			case '@':
				style = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
			case '#':
				style = tcell.StyleDefault.Foreground(tcell.ColorGray)
			case '?':
				style = tcell.StyleDefault.Foreground(tcell.ColorRed)
			}
			if c == v.cursor {
				style = style.Reverse(true)
			}
			v.screen.SetContent(col, row, glyph, nil, style)
		}
	}
	d, ok := f.Distance(v.cursor)
	status := fmt.Sprintf("cursor %d,%d  cost %.2f reached %v  field %d/%d cells  recomputes %d  last %s",
		v.cursor.Col, v.cursor.Row, d, ok, v.reached, v.grid.WalkableCount(), v.field.Recomputes(), v.lastDur)
	help := "arrows: cursor  t/enter: move target  space: block  q: quit"
	for i, r := range status {
		v.screen.SetContent(i, v.grid.Height+1, r, nil, tcell.StyleDefault)
	}
	for i, r := range help {
		v.screen.SetContent(i, v.grid.Height+2, r, nil, tcell.StyleDefault.Dim(true))
	}
	v.screen.Show()
}
