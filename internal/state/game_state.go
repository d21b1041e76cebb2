// internal/state/game_state.go
package state

import (
	"fmt"
	"log/slog"

	"go-horde-survival/internal/app"
	"go-horde-survival/internal/config"
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/types"
	"go-horde-survival/internal/ui"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/render"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	shotRange    = 6.0
	shotDamage   = 25.0
	shotCooldown = 0.2
)

// GameState - состояние игры
type GameState struct {
	sm     *StateMachine
	game   *app.Game
	logger *slog.Logger

	grid     *render.GridRenderer
	entities *render.EntityRenderer
	bars     *ui.HealthBars

	indicator     *ui.StateIndicator
	pauseButton   *ui.PauseButton
	waveIndicator *ui.WaveIndicator
	playerHealth  *ui.PlayerHealthIndicator
	dayNight      *ui.DayNightOverlay

	autopilot  *app.Autopilot
	showArrows bool
	follow     types.EntityID // 0 - камера на игроке
	lastShot   float64
	status     string
}

func NewGameState(sm *StateMachine, cfg config.Config, logger *slog.Logger) (*GameState, error) {
	gameLogic, err := app.NewGame(cfg, logger)
	if err != nil {
		return nil, err
	}

	mapColors := &render.MapColors{
		BackgroundColor: config.BackgroundColor,
		PassableColor:   config.PassableColor,
		RoughColor:      config.RoughColor,
		ImpassableColor: config.ImpassableColor,
		SpawnColor:      config.SpawnColor,
		ArrowColor:      config.ArrowColor,
		StrokeWidth:     1,
	}

	gs := &GameState{
		sm:            sm,
		game:          gameLogic,
		logger:        logger,
		grid:          render.NewGridRenderer(gameLogic.Grid, config.TileSize, mapColors),
		entities:      render.NewEntityRenderer(gameLogic.ECS),
		bars:          ui.NewHealthBars(gameLogic.ECS, gameLogic.Indicators),
		indicator:     ui.NewStateIndicator(config.ScreenWidth-config.IndicatorOffsetX, config.IndicatorOffsetX, config.IndicatorRadius),
		pauseButton:   ui.NewPauseButton(config.ScreenWidth-2*config.IndicatorOffsetX-10, config.IndicatorOffsetX, 8, config.PausedColor, config.WaitingColor),
		waveIndicator: ui.NewWaveIndicator(float64(config.ScreenWidth)/2, 12),
		playerHealth:  ui.NewPlayerHealthIndicator(20, float32(config.ScreenHeight)-130),
		dayNight:      ui.NewDayNightOverlay(float64(config.ScreenWidth)-60, 50),
		showArrows:    true,
	}
	return gs, nil
}

// GetGame отдаёт симуляцию, например для паузы.
func (g *GameState) GetGame() *app.Game {
	return g.game
}

func (g *GameState) Enter() {}

func (g *GameState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.sm.SetState(NewPauseState(g.sm, g))
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		switch {
		case g.pauseButton.IsClicked(x, y):
			g.sm.SetState(NewPauseState(g.sm, g))
			return
		case g.indicator.IsClicked(x, y):
			g.indicator.HandleClick()
		}
	}

	g.handleKeys()
	if g.autopilot != nil {
		g.autopilot.Update(deltaTime)
	} else {
		g.game.PlayerSystem.Move(movementInput())
	}
	g.game.Update(deltaTime)

	if _, ok := g.game.ECS.Agents[g.follow]; !ok {
		g.follow = 0
	}
}

func (g *GameState) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.showArrows = !g.showArrows
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cycleCamera()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.follow = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := clipboard.WriteAll(g.game.FieldDump()); err != nil {
			g.logger.Warn("clipboard unavailable", "err", err)
			g.status = "clipboard unavailable"
		} else {
			g.status = "flow field copied"
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		if g.autopilot == nil {
			g.autopilot = app.NewAutopilot(g.game, utils.NewPRNGService(g.game.Config.Seed+1), app.DefaultAutopilotConfig())
			g.status = "autopilot on"
		} else {
			g.autopilot = nil
			g.status = "autopilot off"
		}
	}

	var kind defs.HitKind
	var damage float64
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyF):
		kind, damage = defs.HitNormal, shotDamage
	case ebiten.IsKeyPressed(ebiten.KeyG):
		kind, damage = defs.HitStagger, shotDamage/2
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		kind, damage = defs.HitFire, 0
	default:
		return
	}
	now := g.game.GetGameTime()
	if kind != defs.HitFire && now-g.lastShot < shotCooldown {
		return
	}
	if !g.game.PlayerSystem.Alive() {
		return
	}
	if a := g.game.NearestAgent(g.game.PlayerSystem.Position(), shotRange); a != nil {
		g.game.Shoot(a, damage, kind)
		g.lastShot = now
	}
}

// cycleCamera переключает камеру на следующего живого агента.
func (g *GameState) cycleCamera() {
	ids := g.game.ECS.AgentIDs()
	if len(ids) == 0 {
		g.follow = 0
		return
	}
	next := ids[0]
	for i, id := range ids {
		if id == g.follow && i+1 < len(ids) {
			next = ids[i+1]
			break
		}
	}
	g.follow = next
}

func movementInput() utils.Vec2 {
	var dir utils.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dir.Y--
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dir.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dir.X++
	}
	return dir
}

// cameraOffset centers the map, or the followed agent when it is larger than the screen.
func (g *GameState) cameraOffset() (float64, float64) {
	mapW := float64(g.game.Grid.Width) * config.TileSize
	mapH := float64(g.game.Grid.Height) * config.TileSize
	center := utils.Vec2{X: float64(g.game.Grid.Width) / 2, Y: float64(g.game.Grid.Height) / 2}
	if a, ok := g.game.ECS.Agents[g.follow]; ok {
		center = a.Position
	} else if mapW > config.ScreenWidth || mapH > config.ScreenHeight {
		center = g.game.PlayerSystem.Position()
	}
	return float64(config.ScreenWidth)/2 - center.X*config.TileSize,
		float64(config.ScreenHeight)/2 - center.Y*config.TileSize
}

func (g *GameState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	ox, oy := g.cameraOffset()

	field := g.game.Field.Field()
	if !g.showArrows {
		field = nil
	}
	g.grid.Draw(screen, field, ox, oy)
	g.entities.Draw(screen, ox, oy)
	g.bars.Draw(screen, ox, oy)

	g.dayNight.Draw(screen, g.game.DayNight)
	g.indicator.Draw(screen, g.game.WaveSystem.State())
	g.pauseButton.Draw(screen)
	g.waveIndicator.Draw(screen, g.game.RoundText)
	if p := g.game.ECS.Player; p != nil {
		g.playerHealth.Draw(screen, p.Health)
	}

	st := g.game.Stats()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  live: %d  pending: %d  kills: %d  deaths: %d\n%s",
		g.game.WaveSystem.State(), g.game.WaveSystem.LiveCount(), g.game.WaveSystem.PendingSpawns(),
		st.Kills, st.PlayerDeaths, g.status))
}

func (g *GameState) Exit() {}
