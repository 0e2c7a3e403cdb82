package pages

import (
	"errors"

	"gioui.org/layout"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core"
	appLogger "github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/core/logger"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/data/models"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/components"
	"github.com/Dukorsa/PORTAL_CLIENTE_GO/internal/ui/theme"
)

// LoginPage é a tela de autenticação do portal.
type LoginPage struct {
	router *ui.Router

	usernameEdit widget.Editor
	passwordEdit *components.PasswordInput
	loginButton  widget.Clickable
	spinner      *components.LoadingSpinner

	isLoading bool
	errorText string
	infoText  string
}

// NewLoginPage cria uma nova instância da LoginPage.
func NewLoginPage(router *ui.Router) *LoginPage {
	lp := &LoginPage{
		router:  router,
		spinner: components.NewLoadingSpinner(theme.Colors.Primary),
	}
	lp.usernameEdit.SingleLine = true
	lp.usernameEdit.Submit = true
	lp.passwordEdit = components.NewPasswordInput()
	lp.passwordEdit.SetHint("Senha")
	lp.passwordEdit.OnSubmit = func(string) { lp.handleLogin() }
	return lp
}

func (lp *LoginPage) OnNavigatedTo(params interface{}) {
	appLogger.Info("Navegou para LoginPage")
	lp.isLoading = false
	lp.errorText = ""
	lp.infoText = ""
	if msg, ok := params.(string); ok {
		lp.infoText = msg
	}
	lp.usernameEdit.SetText("")
	lp.passwordEdit.Clear()
}

func (lp *LoginPage) OnNavigatedFrom() {
	lp.passwordEdit.Clear()
}

// Layout define a UI da página de login.
func (lp *LoginPage) Layout(gtx layout.Context) layout.Dimensions {
	th := lp.router.GetTheme()
	cfg := lp.router.GetConfig()

	if lp.loginButton.Clicked(gtx) {
		lp.handleLogin()
	}
	for {
		ev, ok := lp.usernameEdit.Update(gtx)
		if !ok {
			break
		}
		if _, submitted := ev.(widget.SubmitEvent); submitted {
			lp.handleLogin()
		}
	}

	return layout.Center.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		gtx.Constraints.Max.X = gtx.Dp(unit.Dp(380))
		gtx.Constraints.Min.X = gtx.Constraints.Max.X

		return theme.Card(unit.Dp(28), func(gtx layout.Context) layout.Dimensions {
			return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					title := material.H5(th, cfg.AppName)
					title.Color = theme.Colors.Primary
					return layout.Center.Layout(gtx, title.Layout)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					sub := material.Body2(th, "Acompanhe seus pedidos e boletos")
					sub.Color = theme.Colors.TextMuted
					return layout.Center.Layout(gtx, sub.Layout)
				}),
				layout.Rigid(layout.Spacer{Height: theme.LargeVSpacer}.Layout),

				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					border := widget.Border{
						Color:        theme.Colors.Border,
						CornerRadius: theme.CornerRadius,
						Width:        theme.BorderWidthDefault,
					}
					return border.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
						return layout.UniformInset(unit.Dp(10)).Layout(gtx,
							material.Editor(th, &lp.usernameEdit, "Usuário").Layout)
					})
				}),
				layout.Rigid(layout.Spacer{Height: theme.DefaultVSpacer}.Layout),

				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					return lp.passwordEdit.Layout(gtx, th)
				}),
				layout.Rigid(layout.Spacer{Height: theme.LargeVSpacer}.Layout),

				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if lp.isLoading {
						lp.spinner.Start(gtx)
						return layout.Center.Layout(gtx, lp.spinner.Layout)
					}
					lp.spinner.Stop(gtx)
					btn := theme.PrimaryButton(th, &lp.loginButton, "Entrar")
					return btn.Layout(gtx)
				}),

				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if lp.errorText == "" {
						return layout.Dimensions{}
					}
					errorLabel := material.Body2(th, lp.errorText)
					errorLabel.Color = theme.Colors.Danger
					return layout.Inset{Top: unit.Dp(10)}.Layout(gtx, errorLabel.Layout)
				}),
				layout.Rigid(func(gtx layout.Context) layout.Dimensions {
					if lp.infoText == "" {
						return layout.Dimensions{}
					}
					infoLabel := material.Body2(th, lp.infoText)
					infoLabel.Color = theme.Colors.SuccessText
					return layout.Inset{Top: unit.Dp(10)}.Layout(gtx, infoLabel.Layout)
				}),
			)
		})(gtx)
	})
}

func (lp *LoginPage) handleLogin() {
	if lp.isLoading {
		return
	}
	lp.isLoading = true
	lp.errorText = ""
	lp.infoText = ""
	lp.router.GetAppWindow().Invalidate()

	cred := models.Credenciais{
		Username: lp.usernameEdit.Text(),
		Password: lp.passwordEdit.Text(),
	}

	aw := lp.router.GetAppWindow()
	go func() {
		user, err := lp.router.AuthService().Login(cred)
		aw.Execute(func() {
			lp.isLoading = false
			if err != nil {
				lp.errorText = loginErrorMessage(err)
				appLogger.Warnf("Falha no login: %v", err)
				return
			}
			aw.HandleLoginSuccess(user)
		})
	}()
}

// loginErrorMessage traduz os erros do serviço de autenticação para
// mensagens de tela.
func loginErrorMessage(err error) string {
	var vErr *core.ValidationError
	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.Is(err, core.ErrInvalidCredentials):
		return "Usuário ou senha inválidos."
	case errors.Is(err, core.ErrAuthentication):
		return "Conta indisponível. Entre em contato com o suporte."
	}
	return "Não foi possível entrar. Tente novamente."
}
