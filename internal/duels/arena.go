package duels

import "github.com/pythonsnake602/MiniBit/internal/state"

// SpawnPoint is a team spawn relative to an arena origin.
type SpawnPoint struct {
	Offset state.Vec3
	Yaw    float32
}

// arenas hands out arena slots laid out along +X.
type arenas struct {
	inUse   []bool
	spacing float64
}

func newArenas(count int, spacing float64) *arenas {
	if count <= 0 {
		count = 1
	}
	return &arenas{inUse: make([]bool, count), spacing: spacing}
}

func (a *arenas) acquire() (int, bool) {
	for i, used := range a.inUse {
		if !used {
			a.inUse[i] = true
			return i, true
		}
	}
	return -1, false
}

func (a *arenas) release(i int) {
	if i >= 0 && i < len(a.inUse) {
		a.inUse[i] = false
	}
}

func (a *arenas) free() int {
	n := 0
	for _, used := range a.inUse {
		if !used {
			n++
		}
	}
	return n
}

func (a *arenas) origin(i int) state.Vec3 {
	return state.Vec3{X: float64(i) * a.spacing}
}
