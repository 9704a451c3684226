// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	"log"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tagecs/ecs"
	"github.com/plus3/tagecs/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Game implements ebiten.Game. Each tick runs the scheduler once with a fixed delta of
// one Ebiten tick and renders the inspector over whatever DrawScene draws.
type Game struct {
	Backend   ImguiBackend
	Scheduler *ecs.Scheduler
	UI        *debugui.DebugUI

	// DrawScene draws game content beneath the inspector. Optional.
	DrawScene func(screen *ebiten.Image)

	// Logger receives scheduler flush errors. Defaults to log.Default().
	Logger *log.Logger
}

// NewGame wires a scheduler and its inspector to an Ebiten ImGui backend.
func NewGame(backend *ebitenbackend.EbitenBackend, scheduler *ecs.Scheduler, ui *debugui.DebugUI) *Game {
	return &Game{
		Backend:   ImguiBackend{EbitenBackend: backend},
		Scheduler: scheduler,
		UI:        ui,
		Logger:    log.Default(),
	}
}

func (g *Game) Update() error {
	g.Backend.BeginFrame()
	defer g.Backend.EndFrame()

	if err := g.Scheduler.Once(1.0 / float64(ebiten.TPS())); err != nil {
		g.Logger.Printf("[debugui] scheduler flush: %v", err)
	}
	g.UI.Render()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.DrawScene != nil {
		g.DrawScene(screen)
	}
	g.Backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
