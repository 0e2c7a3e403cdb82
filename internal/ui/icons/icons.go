package icons

import (
	"fmt"
	"image/color"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	mdicons "golang.org/x/exp/shiny/materialdesign/icons"

	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
)

// IconType define os tipos de ícones usados na aplicação.
type IconType int

const (
	IconNone IconType = iota
	IconDashboard
	IconPedidos
	IconFaturas
	IconRastreio
	IconChat
	IconSearch
	IconCalendar
	IconExport
	IconCopy
	IconRefresh
	IconLogout
	IconEye
	IconEyeOff
	IconArrowDropDown
	IconArrowDropUp
	IconChevronLeft
	IconChevronRight
	IconClose
	IconWarning
	IconInfo
	IconError
	IconCheck
)

// iconCache armazena os widget.Icon já construídos. O preenchimento
// acontece na thread da UI, então não há lock.
var iconCache = make(map[IconType]*widget.Icon)

// Get retorna um *widget.Icon para o IconType especificado, mapeado
// para o conjunto Material Design de 'x/exp/shiny'.
func Get(iconType IconType) (*widget.Icon, error) {
	if icon, ok := iconCache[iconType]; ok {
		return icon, nil
	}

	var data []byte
	switch iconType {
	case IconDashboard:
		data = mdicons.ActionDashboard
	case IconPedidos:
		data = mdicons.ActionShoppingCart
	case IconFaturas:
		data = mdicons.ActionReceipt
	case IconRastreio:
		data = mdicons.MapsLocalShipping
	case IconChat:
		data = mdicons.CommunicationChat
	case IconSearch:
		data = mdicons.ActionSearch
	case IconCalendar:
		data = mdicons.ActionDateRange
	case IconExport:
		data = mdicons.FileFileDownload
	case IconCopy:
		data = mdicons.ContentContentCopy
	case IconRefresh:
		data = mdicons.NavigationRefresh
	case IconLogout:
		data = mdicons.ActionExitToApp
	case IconEye:
		data = mdicons.ActionVisibility
	case IconEyeOff:
		data = mdicons.ActionVisibilityOff
	case IconArrowDropDown:
		data = mdicons.NavigationArrowDropDown
	case IconArrowDropUp:
		data = mdicons.NavigationArrowDropUp
	case IconChevronLeft:
		data = mdicons.NavigationChevronLeft
	case IconChevronRight:
		data = mdicons.NavigationChevronRight
	case IconClose:
		data = mdicons.NavigationClose
	case IconWarning:
		data = mdicons.AlertWarning
	case IconInfo:
		data = mdicons.ActionInfo
	case IconError:
		data = mdicons.AlertError
	case IconCheck:
		data = mdicons.ActionCheckCircle
	default:
		appLogger.Warnf("Ícone não mapeado para IconType: %d. Usando fallback (ActionHelp).", iconType)
		data = mdicons.ActionHelp
	}

	icon, err := widget.NewIcon(data)
	if err != nil {
		appLogger.Errorf("Erro ao criar widget.Icon para IconType %d: %v", iconType, err)
		return nil, fmt.Errorf("falha ao criar widget.Icon: %w", err)
	}

	iconCache[iconType] = icon
	return icon, nil
}

// MustGet é a variante de Get para ícones do conjunto fixo da
// aplicação: cai no fallback em vez de retornar erro.
func MustGet(iconType IconType) *widget.Icon {
	icon, err := Get(iconType)
	if err != nil {
		fallback, _ := widget.NewIcon(mdicons.ActionHelp)
		return fallback
	}
	return icon
}

// Layout desenha um widget.Icon com tamanho e cor fixos.
func Layout(gtx layout.Context, icon *widget.Icon, size unit.Dp, c color.NRGBA) layout.Dimensions {
	if icon == nil {
		return layout.Dimensions{}
	}
	gtx.Constraints.Min.X = gtx.Dp(size)
	gtx.Constraints.Min.Y = gtx.Dp(size)
	return icon.Layout(gtx, c)
}
