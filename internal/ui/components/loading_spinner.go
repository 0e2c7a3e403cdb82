package components

import (
	"image"
	"image/color"
	"math"
	"time"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
)

const (
	defaultSpinnerSize        = 50 // dp
	defaultSpinnerNumSegments = 8
	defaultSpinnerSegWidth    = 6   // dp
	defaultSpinnerSegLength   = 0.6 // Proporção do raio para o comprimento do segmento
	spinnerRevolutionTime     = 900 * time.Millisecond
	fadeDuration              = 250 * time.Millisecond
)

// LoadingSpinner é um widget que exibe uma animação de carregamento.
// A rotação é derivada de gtx.Now, então o spinner não precisa de
// goroutine própria: basta desenhá-lo enquanto estiver ativo.
type LoadingSpinner struct {
	isActive bool

	// Configurações do Spinner
	Color         color.NRGBA // Cor principal dos segmentos
	Size          unit.Dp     // Diâmetro do spinner
	NumSegments   int         // Número de segmentos no spinner
	SegmentWidth  unit.Dp     // Largura (espessura) de cada segmento
	SegmentLength float32     // Comprimento do segmento como proporção do raio

	// Estado interno da animação de fade in/out
	visibleOpacity float32
	isFading       bool
	fadeStartTime  time.Time
	fadeTarget     float32
}

// NewLoadingSpinner cria um novo spinner com configurações padrão ou customizadas.
// `spinnerColor` é opcional; se fornecido, usa a primeira cor.
func NewLoadingSpinner(spinnerColor ...color.NRGBA) *LoadingSpinner {
	c := theme.Colors.Primary
	if len(spinnerColor) > 0 {
		c = spinnerColor[0]
	}
	return &LoadingSpinner{
		Color:         c,
		Size:          unit.Dp(defaultSpinnerSize),
		NumSegments:   defaultSpinnerNumSegments,
		SegmentWidth:  unit.Dp(defaultSpinnerSegWidth),
		SegmentLength: defaultSpinnerSegLength,
	}
}

// Start ativa o spinner com um fade-in.
func (s *LoadingSpinner) Start(gtx layout.Context) {
	if s.isActive && s.fadeTarget == 1.0 && !s.isFading {
		return
	}
	s.isActive = true
	s.isFading = true
	s.fadeStartTime = gtx.Now
	s.fadeTarget = 1.0
	gtx.Execute(op.InvalidateCmd{})
}

// Stop desativa o spinner com um fade-out.
func (s *LoadingSpinner) Stop(gtx layout.Context) {
	if !s.isActive && s.fadeTarget == 0.0 && !s.isFading {
		return
	}
	s.isActive = false
	s.isFading = true
	s.fadeStartTime = gtx.Now
	s.fadeTarget = 0.0
	gtx.Execute(op.InvalidateCmd{})
}

// SetVisibility controla a visibilidade do spinner com animação de fade.
func (s *LoadingSpinner) SetVisibility(gtx layout.Context, visible bool) {
	if visible {
		s.Start(gtx)
	} else {
		s.Stop(gtx)
	}
}

// Layout desenha o spinner.
func (s *LoadingSpinner) Layout(gtx layout.Context) layout.Dimensions {
	// Lógica de Fade In/Out
	if s.isFading {
		progress := float32(gtx.Now.Sub(s.fadeStartTime)) / float32(fadeDuration)
		if progress >= 1.0 {
			s.isFading = false
			s.visibleOpacity = s.fadeTarget
		} else if s.fadeTarget == 1.0 {
			s.visibleOpacity = progress
		} else {
			s.visibleOpacity = 1.0 - progress
		}
	}

	// Invisível e parado: ocupa o espaço, mas não desenha nada.
	if !s.isActive && !s.isFading && s.visibleOpacity < 0.01 {
		return layout.Dimensions{Size: image.Pt(gtx.Dp(s.Size), gtx.Dp(s.Size))}
	}

	// Enquanto ativo ou em fade, solicita redesenho contínuo.
	gtx.Execute(op.InvalidateCmd{})

	// Ângulo de rotação derivado do relógio do frame.
	elapsed := gtx.Now.UnixNano() % int64(spinnerRevolutionTime)
	currentAngle := float32(elapsed) / float32(spinnerRevolutionTime) * 2.0 * math.Pi

	spinnerDiameterPx := gtx.Dp(s.Size)
	defer clip.Rect{Max: image.Pt(spinnerDiameterPx, spinnerDiameterPx)}.Push(gtx.Ops).Pop()

	center := f32.Pt(float32(spinnerDiameterPx)/2, float32(spinnerDiameterPx)/2)
	segmentWidthPx := float32(gtx.Dp(s.SegmentWidth))
	// O raio efetivo desconta meia largura de segmento para as pontas
	// arredondadas não saírem do círculo.
	padding := segmentWidthPx/2 + 1
	effectiveRadius := center.X - padding
	if effectiveRadius <= 1 {
		return layout.Dimensions{Size: image.Pt(spinnerDiameterPx, spinnerDiameterPx)}
	}

	offsetTransform := op.Offset(image.Pt(spinnerDiameterPx/2, spinnerDiameterPx/2)).Push(gtx.Ops)
	defer offsetTransform.Pop()

	segmentAngleStepRad := 2.0 * math.Pi / float32(s.NumSegments)

	for i := 0; i < s.NumSegments; i++ {
		angleRad := currentAngle + float32(i)*segmentAngleStepRad

		// Opacidade decai para os segmentos "mais antigos" da trilha.
		opacityFactor := math.Pow(1.0-(float64(i)/float64(s.NumSegments)), 1.8)
		segmentAlpha := uint8(math.Max(20, 255*opacityFactor))
		finalOpacity := uint8(float32(segmentAlpha) * s.visibleOpacity)
		if s.visibleOpacity < 0.01 {
			finalOpacity = 0
		}

		segmentColor := s.Color
		segmentColor.A = finalOpacity

		innerRadius := effectiveRadius * (1.0 - s.SegmentLength)
		startX := innerRadius * float32(math.Cos(float64(angleRad)))
		startY := innerRadius * float32(math.Sin(float64(angleRad)))
		endX := effectiveRadius * float32(math.Cos(float64(angleRad)))
		endY := effectiveRadius * float32(math.Sin(float64(angleRad)))

		var path clip.Path
		path.Begin(gtx.Ops)
		path.MoveTo(f32.Pt(startX, startY))
		path.LineTo(f32.Pt(endX, endY))
		paint.FillShape(gtx.Ops, segmentColor, clip.Stroke{
			Path:  path.End(),
			Width: segmentWidthPx,
		}.Op())
	}

	return layout.Dimensions{Size: image.Pt(spinnerDiameterPx, spinnerDiameterPx)}
}
