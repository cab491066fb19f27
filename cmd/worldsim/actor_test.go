package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/voxel-world/internal/vec"
)

func TestActor_ApplyGravityTerminalVelocity(t *testing.T) {
	// Скорость падения не превышает предельную
	a := NewActor(vec.Vec3Float{Y: 100})
	for i := 0; i < 1000; i++ {
		a.ApplyGravity(0.1, 0.5, 10.0)
	}
	assert.Equal(t, -10.0, a.Velocity[1], "Скорость ограничена предельной")
	assert.Less(t, a.Position.Y, 100.0, "Актор опускается")
}

func TestActor_UpdatePositionIdleIsNoop(t *testing.T) {
	// Без горизонтальной скорости позиция не меняется
	a := NewActor(vec.Vec3Float{X: 1, Y: 2, Z: 3})
	a.UpdatePosition(0.5)
	assert.Equal(t, vec.Vec3Float{X: 1, Y: 2, Z: 3}, a.Position)
}

func TestActor_UpdatePositionFollowsYaw(t *testing.T) {
	// Движение вперёд идёт по направлению взгляда
	a := NewActor(vec.Vec3Float{})
	a.Velocity[0] = -1 // вперёд
	a.Yaw = 0
	a.UpdatePosition(1.0)

	assert.InDelta(t, 0.0, a.Position.X, 1e-9, "При нулевом yaw движение вдоль -Z")
	assert.InDelta(t, -1.0, a.Position.Z, 1e-9)
}

func TestActor_LookDirectionUnit(t *testing.T) {
	// Вектор взгляда единичный и горизонтальный
	a := NewActor(vec.Vec3Float{})
	for _, yaw := range []float64{0, 45, 90, 180, 270, -30} {
		a.Yaw = yaw
		d := a.LookDirection()
		assert.InDelta(t, 1.0, d.X*d.X+d.Z*d.Z, 1e-9, "Единичная длина")
		assert.Equal(t, 0.0, d.Y, "Горизонтальный вектор")
	}
}
