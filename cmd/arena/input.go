package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
)

// Input is the per-frame snapshot of the hero controls.
type Input struct {
	Move cp.Vector

	// edge-triggered
	Attack  bool
	Parry   bool
	Dodge   bool
	Restart bool
	Pause   bool

	// held
	Block bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls keyboard and the first gamepad.
func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	var move cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		move.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		move.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		move.Y += 1
	}

	i.Attack = inpututil.IsKeyJustPressed(ebiten.KeyJ)
	i.Parry = inpututil.IsKeyJustPressed(ebiten.KeyK)
	i.Dodge = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	i.Block = ebiten.IsKeyPressed(ebiten.KeyL)
	i.Restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.Pause = inpututil.IsKeyJustPressed(ebiten.KeyP)

	ids := ebiten.AppendGamepadIDs(nil)
	if len(ids) > 0 {
		gid := ids[0]
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx < -0.3 || lx > 0.3 || ly < -0.3 || ly > 0.3 {
			move = cp.Vector{X: lx, Y: ly}
		}
		i.Attack = i.Attack || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		i.Parry = i.Parry || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		i.Dodge = i.Dodge || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		i.Block = i.Block || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
	}

	i.Move = move
}
