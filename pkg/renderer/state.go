package renderer

// RenderState is the lifecycle stage of a TiledRaytracer
type RenderState int32

const (
	StateIdle RenderState = iota
	StateSceneBuilt
	StateRendering
	StateMerging
	StateDone
	StateFailed
)

func (s RenderState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSceneBuilt:
		return "scene built"
	case StateRendering:
		return "rendering"
	case StateMerging:
		return "merging"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
