package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/circlesim/ecs/component"
)

const stickDeadzone = 0.2

// Actions are the edge-triggered application commands of one frame.
type Actions struct {
	Pause bool
	Reset bool
	Copy  bool
	Debug bool

	Spawn          bool
	SpawnX, SpawnY float64
}

// sampleInput reads the held control keys, with the first gamepad as an
// alternative.
func sampleInput() component.Input {
	in := component.Input{
		Left:   ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:  ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:   ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Jump:   ebiten.IsKeyPressed(ebiten.KeySpace),
		Grow:   inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd),
		Shrink: inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract),
		Delete: inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace),
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		in.Left = in.Left || x < -stickDeadzone
		in.Right = in.Right || x > stickDeadzone
		in.Up = in.Up || y < -stickDeadzone
		in.Down = in.Down || y > stickDeadzone
		in.Jump = in.Jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		in.Grow = in.Grow || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight)
		in.Shrink = in.Shrink || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopLeft)
	}
	return in
}

func sampleActions() Actions {
	a := Actions{
		Pause: inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP),
		Reset: inpututil.IsKeyJustPressed(ebiten.KeyR),
		Copy:  inpututil.IsKeyJustPressed(ebiten.KeyF2),
		Debug: inpututil.IsKeyJustPressed(ebiten.KeyF3),
		Spawn: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
	if a.Spawn {
		x, y := ebiten.CursorPosition()
		a.SpawnX, a.SpawnY = float64(x), float64(y)
	}
	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		a.Pause = a.Pause || inpututil.IsStandardGamepadButtonJustPressed(gamepads[0], ebiten.StandardGamepadButtonCenterRight)
	}
	return a
}
