package theme

import (
	"fmt"
	"image"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
)

// ColorPalette define a paleta de cores customizada da aplicação.
// Os nomes são inspirados em paletas comuns (ex: Bootstrap, Material Design).
type ColorPalette struct {
	// Cores Primárias (usadas para branding, ações principais)
	Primary      color.NRGBA // Cor principal da marca.
	PrimaryLight color.NRGBA // Variação mais clara da cor primária.
	PrimaryDark  color.NRGBA // Variação mais escura da cor primária.
	PrimaryText  color.NRGBA // Cor do texto para usar sobre fundos `Primary`.

	// Cores Neutras (tons de cinza e branco)
	White   color.NRGBA
	Grey50  color.NRGBA // Cinza muito claro (quase branco).
	Grey100 color.NRGBA
	Grey200 color.NRGBA
	Grey300 color.NRGBA // Cinza para bordas sutis, divisores.
	Grey500 color.NRGBA // Cinza médio, para texto secundário ou ícones.
	Grey600 color.NRGBA
	Grey800 color.NRGBA // Cinza escuro, para texto principal em fundos claros.
	Grey900 color.NRGBA
	Black   color.NRGBA

	// Cores Semânticas para Feedback de UI (Alertas, Validação)
	Success       color.NRGBA
	SuccessText   color.NRGBA
	SuccessBg     color.NRGBA
	SuccessBorder color.NRGBA

	Warning       color.NRGBA
	WarningText   color.NRGBA
	WarningBg     color.NRGBA
	WarningBorder color.NRGBA

	Danger       color.NRGBA
	DangerText   color.NRGBA
	DangerBg     color.NRGBA
	DangerBorder color.NRGBA

	Info       color.NRGBA
	InfoText   color.NRGBA
	InfoBg     color.NRGBA
	InfoBorder color.NRGBA

	// Cores Base da UI
	Background    color.NRGBA // Fundo principal da janela/páginas.
	BackgroundAlt color.NRGBA // Fundo alternativo (ex: linhas de tabela zebradas).
	Surface       color.NRGBA // Fundo de elementos elevados (cards, diálogos, menus).
	Text          color.NRGBA // Cor de texto principal.
	TextMuted     color.NRGBA // Cor de texto secundário/sutil.
	Border        color.NRGBA // Cor de borda padrão para inputs, tabelas, divisores.
	FocusRing     color.NRGBA // Cor para anel de foco em elementos interativos.
}

// hexToNRGBA converte uma string hexadecimal de cor (ex: "#RRGGBB" ou "#RGB") para color.NRGBA.
// Retorna preto como fallback em caso de erro de parsing.
func hexToNRGBA(hex string) color.NRGBA {
	var r, g, b uint8
	var count int
	var err error

	if len(hex) == 0 || hex[0] != '#' {
		appLogger.Warnf("Formato de cor hexadecimal inválido (deve começar com #): '%s'. Usando preto.", hex)
		return color.NRGBA{R: 0, G: 0, B: 0, A: 0xFF}
	}

	hex = hex[1:]

	switch len(hex) {
	case 6: // Formato #RRGGBB
		count, err = fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	case 3: // Formato #RGB (abreviado)
		count, err = fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b)
		if count == 3 && err == nil {
			r *= 17 // Converte 0xF para 0xFF, 0xA para 0xAA, etc.
			g *= 17
			b *= 17
		}
	default:
		appLogger.Warnf("Comprimento de cor hexadecimal inválido (esperado 3 ou 6 caracteres após #): '%s'. Usando preto.", hex)
		return color.NRGBA{R: 0, G: 0, B: 0, A: 0xFF}
	}

	if err != nil || count != 3 {
		appLogger.Warnf("Erro ao parsear cor hexadecimal '%s' (Scanf count: %d, err: %v). Usando preto.", hex, count, err)
		return color.NRGBA{R: 0, G: 0, B: 0, A: 0xFF}
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

// Colors é a instância global da paleta de cores da aplicação.
var Colors = ColorPalette{
	// Paleta Azul Primária do portal
	Primary:      hexToNRGBA("#1A659E"),
	PrimaryLight: hexToNRGBA("#4D8DBC"),
	PrimaryDark:  hexToNRGBA("#0F4C7B"),
	PrimaryText:  hexToNRGBA("#FFFFFF"),

	White:   hexToNRGBA("#FFFFFF"),
	Grey50:  hexToNRGBA("#F8F9FA"),
	Grey100: hexToNRGBA("#F1F3F5"),
	Grey200: hexToNRGBA("#E9ECEF"),
	Grey300: hexToNRGBA("#DEE2E6"),
	Grey500: hexToNRGBA("#ADB5BD"),
	Grey600: hexToNRGBA("#6C757D"),
	Grey800: hexToNRGBA("#343A40"),
	Grey900: hexToNRGBA("#212529"),
	Black:   hexToNRGBA("#000000"),

	// Cores Semânticas (Estilo Bootstrap)
	Success:       hexToNRGBA("#198754"),
	SuccessText:   hexToNRGBA("#0A3622"),
	SuccessBg:     hexToNRGBA("#D1E7DD"),
	SuccessBorder: hexToNRGBA("#A3CFBB"),

	Warning:       hexToNRGBA("#FFC107"),
	WarningText:   hexToNRGBA("#664D03"),
	WarningBg:     hexToNRGBA("#FFF3CD"),
	WarningBorder: hexToNRGBA("#FFDA6A"),

	Danger:       hexToNRGBA("#DC3545"),
	DangerText:   hexToNRGBA("#58151C"),
	DangerBg:     hexToNRGBA("#F8D7DA"),
	DangerBorder: hexToNRGBA("#F1AEB5"),

	Info:       hexToNRGBA("#0DCAF0"),
	InfoText:   hexToNRGBA("#055160"),
	InfoBg:     hexToNRGBA("#CFF4FC"),
	InfoBorder: hexToNRGBA("#9EEAF9"),

	Background:    hexToNRGBA("#FFFFFF"),
	BackgroundAlt: hexToNRGBA("#F8F9FA"),
	Surface:       hexToNRGBA("#FFFFFF"),
	Text:          hexToNRGBA("#212529"),
	TextMuted:     hexToNRGBA("#6C757D"),
	Border:        hexToNRGBA("#DEE2E6"),
	FocusRing:     hexToNRGBA("#86B7FE"),
}

// Unidades de Medida Padrão para consistência na UI.
var (
	// Espaçamento e Padding
	TightVSpacer   = unit.Dp(4)
	DefaultVSpacer = unit.Dp(8)
	LargeVSpacer   = unit.Dp(16)
	PagePadding    = unit.Dp(16)

	// Tamanhos de Componentes (alturas mínimas, raios)
	ButtonMinHeight    = unit.Dp(36)
	InputMinHeight     = unit.Dp(38)
	ListItemHeight     = unit.Dp(48)
	TableRowHeight     = unit.Dp(40)
	CornerRadius       = unit.Dp(4)
	BorderWidthDefault = unit.Dp(1)

	// Dimensões da Janela
	WindowDefaultWidth  = unit.Dp(1100)
	WindowDefaultHeight = unit.Dp(740)
	WindowMinWidth      = unit.Dp(860)
	WindowMinHeight     = unit.Dp(600)

	// Largura da barra lateral do layout principal
	SidebarWidth = unit.Dp(210)
)

// NewAppTheme cria uma instância customizada de `material.Theme` para a
// aplicação, com a coleção de fontes Go e a paleta do portal.
func NewAppTheme() *material.Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))

	// Sobrescreve as cores da paleta padrão do tema. Isso afeta como os
	// widgets `material.*` são renderizados por padrão.
	th.Palette = material.Palette{
		Fg:         Colors.Text,
		Bg:         Colors.Background,
		ContrastFg: Colors.PrimaryText, // Texto em botões primários.
		ContrastBg: Colors.Primary,
	}
	return th
}

// --- Funções Helper para Estilos ---

// PrimaryButton retorna um `material.ButtonStyle` com as cores primárias
// do portal.
func PrimaryButton(th *material.Theme, clickable *widget.Clickable, text string) material.ButtonStyle {
	btn := material.Button(th, clickable, text)
	btn.Background = Colors.Primary
	btn.Color = Colors.PrimaryText
	btn.CornerRadius = CornerRadius
	return btn
}

// OutlineButton retorna um botão secundário de contorno, usado para
// ações menos proeminentes (limpar filtro, exportar).
func OutlineButton(th *material.Theme, clickable *widget.Clickable, text string) material.ButtonStyle {
	btn := material.Button(th, clickable, text)
	btn.Background = Colors.Surface
	btn.Color = Colors.Primary
	btn.CornerRadius = CornerRadius
	return btn
}

// Card desenha `content` sobre um fundo `Surface` com borda e cantos
// arredondados, no padrão dos cartões do portal.
func Card(internalPadding unit.Dp, content layout.Widget) layout.Widget {
	return func(gtx layout.Context) layout.Dimensions {
		border := widget.Border{
			Color:        Colors.Border,
			CornerRadius: CornerRadius,
			Width:        BorderWidthDefault,
		}
		return border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return layout.Background{}.Layout(gtx,
				func(gtx layout.Context) layout.Dimensions {
					rr := gtx.Dp(CornerRadius)
					rect := image.Rectangle{Max: gtx.Constraints.Min}
					defer clip.UniformRRect(rect, rr).Push(gtx.Ops).Pop()
					paint.Fill(gtx.Ops, Colors.Surface)
					return layout.Dimensions{Size: gtx.Constraints.Min}
				},
				func(gtx layout.Context) layout.Dimensions {
					return layout.UniformInset(internalPadding).Layout(gtx, content)
				},
			)
		})
	}
}
