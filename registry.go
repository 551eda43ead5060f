package flowcanvas

// Well-known NodeData field names.
const (
	FieldTitle       = "title"
	FieldContent     = "content"
	FieldPrompt      = "prompt"
	FieldImageURL    = "imageUrl"
	FieldVideoURL    = "videoUrl"
	FieldCameraAngle = "cameraAngle"
	FieldLighting    = "lighting"
)

// NodeData is the kind-specific record carried by a node. Updates are shallow
// merges keyed by field name.
type NodeData map[string]string

// Clone returns an independent copy of d. Clone of nil is an empty record.
func (d NodeData) Clone() NodeData {
	out := make(NodeData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Merge writes every field of partial into d.
func (d NodeData) Merge(partial NodeData) {
	for k, v := range partial {
		d[k] = v
	}
}

// firstNonEmpty returns the first non-empty value of the named fields.
func (d NodeData) firstNonEmpty(fields ...string) (string, bool) {
	for _, f := range fields {
		if v := d[f]; v != "" {
			return v, true
		}
	}
	return "", false
}

// KindRegistry supplies per-kind display widths and default data. The core
// queries it but never defines visuals.
type KindRegistry interface {
	DisplayWidth(kind NodeKind) float64
	DefaultData(kind NodeKind) NodeData
}

// KindSpec describes one node kind.
type KindSpec struct {
	DisplayWidth  float64
	DisplayHeight float64
	DefaultData   NodeData
}

const (
	defaultKindWidth  = 256
	defaultKindHeight = 160
)

// Registry is the standard KindRegistry, a lookup table by kind.
type Registry struct {
	specs map[NodeKind]KindSpec
}

// NewRegistry creates an empty registry. Unregistered kinds report the
// fallback width and empty default data.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[NodeKind]KindSpec)}
}

// DefaultRegistry returns a registry populated with the stock node kinds.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindScript, KindSpec{
		DisplayWidth: 384, DisplayHeight: 220,
		DefaultData: NodeData{FieldTitle: "Scene script", FieldContent: ""},
	})
	r.Register(KindShot, KindSpec{
		DisplayWidth: 288, DisplayHeight: 200,
		DefaultData: NodeData{FieldPrompt: "", FieldCameraAngle: "Eye Level", FieldLighting: "Natural"},
	})
	r.Register(KindText, KindSpec{
		DisplayWidth: 256, DisplayHeight: 160,
		DefaultData: NodeData{FieldTitle: "New Entry", FieldContent: ""},
	})
	r.Register(KindImage, KindSpec{
		DisplayWidth: 256, DisplayHeight: 200,
		DefaultData: NodeData{FieldTitle: "Image Asset", FieldImageURL: ""},
	})
	r.Register(KindVideo, KindSpec{
		DisplayWidth: 288, DisplayHeight: 200,
		DefaultData: NodeData{FieldTitle: "Video Stream", FieldVideoURL: ""},
	})
	return r
}

// Register sets or replaces the spec for kind.
func (r *Registry) Register(kind NodeKind, spec KindSpec) {
	r.specs[kind] = spec
}

// Spec returns the spec for kind and whether it was registered.
func (r *Registry) Spec(kind NodeKind) (KindSpec, bool) {
	s, ok := r.specs[kind]
	return s, ok
}

// DisplayWidth returns the canvas-space width of kind.
func (r *Registry) DisplayWidth(kind NodeKind) float64 {
	if s, ok := r.specs[kind]; ok && s.DisplayWidth > 0 {
		return s.DisplayWidth
	}
	return defaultKindWidth
}

// DisplayHeight returns the canvas-space height of kind.
func (r *Registry) DisplayHeight(kind NodeKind) float64 {
	if s, ok := r.specs[kind]; ok && s.DisplayHeight > 0 {
		return s.DisplayHeight
	}
	return defaultKindHeight
}

// DefaultData returns a fresh copy of the default data for kind.
func (r *Registry) DefaultData(kind NodeKind) NodeData {
	return r.specs[kind].DefaultData.Clone()
}
