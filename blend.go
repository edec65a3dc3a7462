package sprite

import "github.com/gogpu/gputypes"

// Blend is a fixed-function blend configuration: a factor pair for the
// color channels and one for alpha, both combined additively.
//
// Values named PMA* expect premultiplied-alpha sources; NPMNormal is the
// straight-alpha over operator.
type Blend struct {
	Color gputypes.BlendComponent
	Alpha gputypes.BlendComponent
}

// Add builds a Blend that uses the same factor pair for color and alpha.
func Add(src, dst gputypes.BlendFactor) Blend {
	return AddSeparate(src, dst, src, dst)
}

// AddSeparate builds a Blend with independent color and alpha factors.
func AddSeparate(colorSrc, colorDst, alphaSrc, alphaDst gputypes.BlendFactor) Blend {
	return Blend{
		Color: gputypes.BlendComponent{
			SrcFactor: colorSrc,
			DstFactor: colorDst,
			Operation: gputypes.BlendOperationAdd,
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: alphaSrc,
			DstFactor: alphaDst,
			Operation: gputypes.BlendOperationAdd,
		},
	}
}

const (
	fZero             = gputypes.BlendFactorZero
	fOne              = gputypes.BlendFactorOne
	fSrc              = gputypes.BlendFactorSrc
	fOneMinusSrc      = gputypes.BlendFactorOneMinusSrc
	fSrcAlpha         = gputypes.BlendFactorSrcAlpha
	fOneMinusSrcAlpha = gputypes.BlendFactorOneMinusSrcAlpha
	fDst              = gputypes.BlendFactorDst
	fDstAlpha         = gputypes.BlendFactorDstAlpha
	fOneMinusDstAlpha = gputypes.BlendFactorOneMinusDstAlpha
)

// Porter-Duff operators on premultiplied colors.
var (
	PMASrc     = Add(fOne, fZero)
	PMASrcAtop = Add(fDstAlpha, fOneMinusSrcAlpha)
	PMASrcOver = Add(fOne, fOneMinusSrcAlpha)
	PMASrcIn   = Add(fDstAlpha, fZero)
	PMASrcOut  = Add(fOneMinusDstAlpha, fZero)

	PMADst     = Add(fZero, fOne)
	PMADstAtop = Add(fOneMinusDstAlpha, fSrcAlpha)
	PMADstOver = Add(fOneMinusDstAlpha, fOne)
	PMADstIn   = Add(fZero, fSrcAlpha)
	PMADstOut  = Add(fZero, fOneMinusSrcAlpha)

	PMAClear = Add(fZero, fZero)
	PMAXor   = Add(fOneMinusDstAlpha, fOneMinusSrcAlpha)
)

// Separable arithmetic operators on premultiplied colors.
var (
	PMAAdd      = Add(fOne, fOne)
	PMAMultiply = AddSeparate(fDst, fOneMinusSrcAlpha, fDstAlpha, fOneMinusSrcAlpha)
	PMAScreen   = AddSeparate(fOne, fOneMinusSrc, fOne, fOneMinusSrcAlpha)
)

var (
	// PMANormal is the default premultiplied blend (source over).
	PMANormal = PMASrcOver

	// NPMNormal is source over for straight-alpha sources.
	NPMNormal = AddSeparate(fSrcAlpha, fOneMinusSrcAlpha, fOne, fOneMinusSrcAlpha)

	// Replace overwrites the destination. Pipelines built with it have
	// blending disabled.
	Replace = Add(fOne, fZero)
)

// NamedBlend pairs a Blend with a display name.
type NamedBlend struct {
	Name  string
	Blend Blend
}

// CompositeOperators returns the premultiplied compositing operators in
// a stable order.
func CompositeOperators() []NamedBlend {
	return []NamedBlend{
		{"src", PMASrc},
		{"src-atop", PMASrcAtop},
		{"src-over", PMASrcOver},
		{"src-in", PMASrcIn},
		{"src-out", PMASrcOut},
		{"dst", PMADst},
		{"dst-atop", PMADstAtop},
		{"dst-over", PMADstOver},
		{"dst-in", PMADstIn},
		{"dst-out", PMADstOut},
		{"clear", PMAClear},
		{"xor", PMAXor},
		{"add", PMAAdd},
		{"multiply", PMAMultiply},
		{"screen", PMAScreen},
	}
}

// IsReplace reports whether b writes the source unchanged on both
// channels, which is the same as no blending.
func (b Blend) IsReplace() bool {
	return b == Replace
}

// State returns the pipeline blend state, or nil when b is a replace.
func (b Blend) State() *gputypes.BlendState {
	if b.IsReplace() {
		return nil
	}
	return &gputypes.BlendState{Color: b.Color, Alpha: b.Alpha}
}

// ColorTarget returns the color target state for a pipeline rendering to
// format with this blend.
func (b Blend) ColorTarget(format gputypes.TextureFormat) gputypes.ColorTargetState {
	return gputypes.ColorTargetState{
		Format:    format,
		Blend:     b.State(),
		WriteMask: gputypes.ColorWriteMaskAll,
	}
}

// Eval evaluates the blend equation on the CPU for RGBA values in [0, 1].
// It mirrors what the fixed-function stage computes and is used to
// predict composited output.
func (b Blend) Eval(src, dst [4]float32) [4]float32 {
	var out [4]float32
	for i := range 3 {
		out[i] = src[i]*factor(b.Color.SrcFactor, src, dst, i) +
			dst[i]*factor(b.Color.DstFactor, src, dst, i)
	}
	out[3] = src[3]*factor(b.Alpha.SrcFactor, src, dst, 3) +
		dst[3]*factor(b.Alpha.DstFactor, src, dst, 3)
	for i := range out {
		out[i] = clamp01(out[i])
	}
	return out
}

func factor(f gputypes.BlendFactor, src, dst [4]float32, ch int) float32 {
	switch f {
	case fZero:
		return 0
	case fOne:
		return 1
	case fSrc:
		return src[ch]
	case fOneMinusSrc:
		return 1 - src[ch]
	case fSrcAlpha:
		return src[3]
	case fOneMinusSrcAlpha:
		return 1 - src[3]
	case fDst:
		return dst[ch]
	case gputypes.BlendFactorOneMinusDst:
		return 1 - dst[ch]
	case fDstAlpha:
		return dst[3]
	case fOneMinusDstAlpha:
		return 1 - dst[3]
	case gputypes.BlendFactorSrcAlphaSaturated:
		if ch == 3 {
			return 1
		}
		return min(src[3], 1-dst[3])
	default:
		return 0
	}
}
