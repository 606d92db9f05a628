package pages

import (
	"context"
	"strconv"

	"proply_app_go/middleware"
	"proply_app_go/models"
	"proply_app_go/services/i18n"
	"proply_app_go/templates/components"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

const (
	htmxURL     = "https://unpkg.com/htmx.org@2.0.4"
	confettiURL = "https://cdn.jsdelivr.net/npm/canvas-confetti@1.9.3/dist/confetti.browser.min.js"
)

// Landing renders the full landing page: loading screen, hero and both modals
func Landing(view LandingView) templ.Component {
	return components.Templ(func(ctx context.Context) g.Node {
		return landingPage(ctx, view)
	})
}

func landingPage(ctx context.Context, v LandingView) g.Node {
	policy := "retain"
	if v.ResetOnOpen {
		policy = "reset"
	}

	return h.Doctype(
		h.HTML(
			h.Lang(v.Locale),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(i18n.T(ctx, "page.title"))),
				h.Meta(h.Name("description"), h.Content(i18n.T(ctx, "page.description"))),
				h.Link(h.Rel("icon"), h.Href(middleware.AssetURL("images/logo.svg"))),
				h.Link(h.Rel("stylesheet"), h.Href(middleware.AssetURL("css/landing.css"))),
				h.Script(h.Src(htmxURL), h.Defer(), g.Attr("nonce", v.Nonce)),
				h.Script(h.Src(confettiURL), h.Defer(), g.Attr("nonce", v.Nonce)),
			),
			h.Body(
				h.Data("reset-policy", policy),
				g.If(v.CSRFToken != "", g.Attr("hx-headers", components.JSON(map[string]string{middleware.CSRFHeader: v.CSRFToken}))),
				loadingScreen(v),
				hero(ctx, v),
				modalOverlay(ctx, v.Waitlist),
				modalOverlay(ctx, v.Beta),
				components.JSONScript(ctx, "intro-plan", v.Plan, v.Nonce),
				h.Script(h.Src(middleware.AssetURL("js/landing.js")), h.Defer(), g.Attr("nonce", v.Nonce)),
			),
		),
	)
}

// loadingScreen shows the logo at once and the wordmark at the brand reveal
func loadingScreen(v LandingView) g.Node {
	var letters []g.Node
	for i, r := range []rune(v.Content.Brand) {
		letters = append(letters, h.Span(h.Style("--i: "+strconv.Itoa(i)), g.Text(string(r))))
	}
	return h.Div(
		h.ID("loading-screen"),
		h.Class("loading-screen"),
		h.Img(h.Src(v.Content.LogoURL), h.Alt(v.Content.Brand), h.Class("loading-logo")),
		h.H1(
			h.ID("loading-brand"),
			h.Class("loading-brand"),
			g.Attr("hidden"),
			g.Group(letters),
		),
	)
}

func hero(ctx context.Context, v LandingView) g.Node {
	return h.Main(
		h.ID("content"),
		h.Class("hero"),
		g.Attr("hidden"),
		h.Div(
			h.Class("hero-brand"),
			h.Img(h.Src(v.Content.LogoURL), h.Alt(v.Content.Brand), h.Class("hero-logo")),
			h.Span(g.Text(v.Content.Brand)),
		),
		h.H1(
			h.Class("hero-headline"),
			g.Text(v.Content.Headline),
			h.Br(),
			h.Span(h.Class("gradient-text"), g.Text(v.Content.HeadlineAccent)),
		),
		h.Div(
			h.Class("hero-typing"),
			h.P(
				h.ID("typing-text"),
				h.Aria("label", v.Content.TypedSentence),
			),
			h.Span(h.ID("cursor"), h.Class("cursor"), h.Aria("hidden", "true")),
		),
		h.Div(
			h.Class("hero-actions"),
			h.Button(
				h.Type("button"),
				h.Class("btn btn-primary btn-glow"),
				h.Data("open-modal", string(models.FormWaitlist)),
				g.Text(i18n.T(ctx, "hero.join_waitlist")),
			),
			h.Button(
				h.Type("button"),
				h.Class("btn btn-link"),
				h.Data("open-modal", string(models.FormBeta)),
				g.Text(i18n.T(ctx, "hero.become_beta")),
			),
		),
	)
}

func modalOverlay(ctx context.Context, m components.ModalView) g.Node {
	return h.Div(
		h.ID("overlay-"+string(m.Variant)),
		h.Class("lead-overlay"),
		h.Data("modal", string(m.Variant)),
		h.Role("dialog"),
		h.Aria("modal", "true"),
		g.Attr("hidden"),
		h.Div(
			h.Class("lead-dialog"),
			h.Button(
				h.Type("button"),
				h.Class("lead-close"),
				h.Data("close-modal", ""),
				h.Aria("label", i18n.T(ctx, "modal.close")),
				g.Text("×"),
			),
			components.LeadModal(ctx, m),
		),
	)
}
