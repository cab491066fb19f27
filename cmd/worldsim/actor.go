package main

import (
	"math"

	"github.com/annel0/voxel-world/internal/vec"
)

// Actor — актор, перемещающийся по миру. Ядро мира актора не хранит:
// оно получает позицию и высоту и возвращает скорректированную позицию.
type Actor struct {
	// Height — высота актора в блоках.
	Height int
	// Position — непрерывная позиция актора.
	Position vec.Vec3Float
	// Velocity — скорость по осям: X — вперёд/назад, Y — вертикаль,
	// Z — вбок (в системе координат взгляда).
	Velocity [3]float64
	// Yaw — поворот взгляда вокруг вертикальной оси, градусы.
	Yaw float64
}

// NewActor создаёт актора высотой два блока в указанной позиции.
func NewActor(position vec.Vec3Float) *Actor {
	return &Actor{
		Height:   2,
		Position: position,
	}
}

// UpdatePosition перемещает актора в горизонтальной плоскости по
// текущей скорости с учётом направления взгляда.
func (a *Actor) UpdatePosition(dt float64) {
	xVel, zVel := a.Velocity[0], a.Velocity[2]
	if xVel == 0 && zVel == 0 {
		return
	}
	angle := a.Yaw + radToDeg(math.Atan2(xVel, zVel))
	rad := degToRad(angle)
	a.Position.X += dt * math.Cos(rad)
	a.Position.Z += dt * math.Sin(rad)
}

// ApplyGravity опускает вертикальную скорость актора, не давая ей
// превысить предельную, и смещает позицию.
func (a *Actor) ApplyGravity(dt, gravity, terminalVelocity float64) {
	a.Velocity[1] -= dt * gravity
	if a.Velocity[1] < -terminalVelocity {
		a.Velocity[1] = -terminalVelocity
	}
	a.Position.Y += dt * a.Velocity[1]
}

// LookDirection возвращает горизонтальный единичный вектор взгляда.
func (a *Actor) LookDirection() vec.Vec3Float {
	rad := degToRad(a.Yaw - 90)
	return vec.Vec3Float{X: math.Cos(rad), Y: 0, Z: math.Sin(rad)}
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
