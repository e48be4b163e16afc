package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/isoterrain/config"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func nearVec(a, b mgl32.Vec3) bool {
	return near(a[0], b[0]) && near(a[1], b[1]) && near(a[2], b[2])
}

func TestDefault(t *testing.T) {
	cam := Default()

	if cam.Position != (mgl32.Vec3{50, 150, 3}) {
		t.Errorf("expected start position (50,150,3), got %v", cam.Position)
	}
	// Yaw -90 looks down -Z
	if !nearVec(cam.Front, mgl32.Vec3{0, 0, -1}) {
		t.Errorf("expected front (0,0,-1), got %v", cam.Front)
	}
	if cam.MovementSpeed != 0.5 || cam.MouseSensitivity != 0.3 {
		t.Errorf("unexpected speed %f / sensitivity %f", cam.MovementSpeed, cam.MouseSensitivity)
	}
}

func TestMovement(t *testing.T) {
	testCases := []struct {
		name  string
		in    InputState
		delta mgl32.Vec3
	}{
		{"forward", InputState{Forward: true}, mgl32.Vec3{0, 0, -0.5}},
		{"back", InputState{Back: true}, mgl32.Vec3{0, 0, 0.5}},
		{"left", InputState{Left: true}, mgl32.Vec3{-0.5, 0, 0}},
		{"right", InputState{Right: true}, mgl32.Vec3{0.5, 0, 0}},
		{"idle", InputState{}, mgl32.Vec3{}},
		{"forward and back cancel", InputState{Forward: true, Back: true}, mgl32.Vec3{}},
	}

	for _, tc := range testCases {
		cam := Default()
		start := cam.Position
		cam.Update(tc.in)
		if got := cam.Position.Sub(start); !nearVec(got, tc.delta) {
			t.Errorf("%s: expected delta %v, got %v", tc.name, tc.delta, got)
		}
	}
}

func TestLookTurnsFront(t *testing.T) {
	cam := Default()
	// 300 px at 0.3 deg/px = 90 degrees of yaw: -Z turns to +X
	cam.Look(300, 0)

	if !near(cam.Yaw, 0) {
		t.Errorf("expected yaw 0, got %f", cam.Yaw)
	}
	if !nearVec(cam.Front, mgl32.Vec3{1, 0, 0}) {
		t.Errorf("expected front (1,0,0), got %v", cam.Front)
	}
}

func TestPitchClamp(t *testing.T) {
	cam := Default()
	cam.Look(0, 1000)
	if cam.Pitch != maxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", float32(maxPitch), cam.Pitch)
	}
	cam.Look(0, -5000)
	if cam.Pitch != -maxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", float32(-maxPitch), cam.Pitch)
	}
	if !near(cam.Front.Len(), 1) {
		t.Errorf("expected unit front vector, got length %f", cam.Front.Len())
	}
}

func TestUpdateAppliesMouse(t *testing.T) {
	cam := Default()
	cam.Update(InputState{MouseDY: 100})
	if !near(cam.Pitch, 30) {
		t.Errorf("expected pitch 30, got %f", cam.Pitch)
	}
	if cam.Front.Y() <= 0 {
		t.Errorf("expected camera to look up, front %v", cam.Front)
	}
}

func TestFromConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cam := FromConfig(cfg.Camera)
	def := Default()

	if cam.Position != def.Position {
		t.Errorf("expected position %v, got %v", def.Position, cam.Position)
	}
	if !nearVec(cam.Front, def.Front) {
		t.Errorf("expected front %v, got %v", def.Front, cam.Front)
	}
	if cam.Fovy != 45 {
		t.Errorf("expected fovy 45, got %f", cam.Fovy)
	}
}
