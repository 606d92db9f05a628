package components

import (
	"context"
	"strings"

	"proply_app_go/models"
	"proply_app_go/services/i18n"
	"proply_app_go/services/leadform"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

// ModalView is everything a lead modal fragment needs
type ModalView struct {
	Variant   models.FormVariant
	State     leadform.State
	Fields    models.ContactSubmission
	Brand     string
	LogoURL   string
	SurveyURL string
	Benefits  []string
	// Burst is set on the render that reached Success
	Burst *leadform.Burst
}

// ModalID is the DOM id of the variant's fragment, the htmx swap target
func ModalID(variant models.FormVariant) string {
	return "lead-modal-" + string(variant)
}

// LeadModal renders the body of a lead-capture modal for its current state.
// The whole fragment is swapped on every transition.
func LeadModal(ctx context.Context, v ModalView) g.Node {
	return h.Div(
		h.ID(ModalID(v.Variant)),
		h.Class("lead-modal"),
		h.Data("variant", string(v.Variant)),
		h.Data("stage", v.State.Stage.String()),
		h.Data("status", v.State.Status.String()),
		modalBody(ctx, v),
	)
}

func modalBody(ctx context.Context, v ModalView) g.Node {
	if v.State.Status == leadform.Success {
		return successView(ctx, v)
	}

	prefix := "waitlist."
	if v.Variant == models.FormBeta {
		prefix = "beta."
	}

	var step g.Node
	switch {
	case v.Variant == models.FormBeta && v.State.Stage == leadform.SurveyStage:
		step = surveyView(ctx, v)
	case v.Variant == models.FormBeta:
		step = betaForm(ctx, v)
	default:
		step = waitlistForm(ctx, v)
	}

	return g.Group([]g.Node{
		h.Div(
			h.Class("lead-header"),
			g.If(v.Variant == models.FormBeta, brandMark(v)),
			h.H2(h.Class("lead-title"), g.Text(i18n.T(ctx, prefix+"title"))),
			h.P(h.Class("lead-subtitle"), g.Text(i18n.T(ctx, prefix+"subtitle"))),
		),
		errorAlert(v.State.Message),
		step,
	})
}

func brandMark(v ModalView) g.Node {
	return h.Div(
		h.Class("lead-brand"),
		h.Img(h.Src(v.LogoURL), h.Alt(v.Brand), h.Class("lead-logo")),
		h.Span(g.Text(v.Brand)),
	)
}

func errorAlert(message string) g.Node {
	if message == "" {
		return nil
	}
	return h.Div(
		h.Class("lead-alert"),
		h.Role("alert"),
		h.P(g.Text(message)),
	)
}

func waitlistForm(ctx context.Context, v ModalView) g.Node {
	return h.Form(
		h.Class("lead-form"),
		g.Attr("novalidate"),
		g.Attr("hx-post", "/leads/waitlist"),
		g.Attr("hx-target", "#"+ModalID(v.Variant)),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-disabled-elt", "find button, find input"),
		field(ctx, v, "name", "text", "modal.full_name", "modal.full_name_placeholder"),
		field(ctx, v, "email", "email", "modal.email", "modal.email_placeholder"),
		field(ctx, v, "company", "text", "modal.company", "modal.company_placeholder"),
		submitButton(i18n.T(ctx, "waitlist.submit"), i18n.T(ctx, "waitlist.submitting"), h.Type("submit")),
	)
}

func betaForm(ctx context.Context, v ModalView) g.Node {
	return g.Group([]g.Node{
		h.Form(
			h.Class("lead-form"),
			g.Attr("novalidate"),
			g.Attr("hx-post", "/leads/beta"),
			g.Attr("hx-target", "#"+ModalID(v.Variant)),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("hx-disabled-elt", "find button, find input"),
			field(ctx, v, "name", "text", "modal.full_name", "modal.full_name_placeholder"),
			field(ctx, v, "email", "email", "modal.email", "modal.email_placeholder"),
			field(ctx, v, "phone", "tel", "modal.phone", "modal.phone_placeholder"),
			field(ctx, v, "company", "text", "modal.company", "modal.company_placeholder"),
			g.If(len(v.Benefits) > 0, h.Div(
				h.Class("lead-benefits"),
				h.P(h.Class("lead-benefits-title"), g.Text(i18n.T(ctx, "beta.benefits_title"))),
				h.Ul(g.Map(v.Benefits, func(b string) g.Node {
					return h.Li(g.Text(b))
				})),
			)),
			submitButton(i18n.T(ctx, "beta.submit"), i18n.T(ctx, "beta.submit"), h.Type("submit")),
		),
		h.P(h.Class("lead-footnote"), g.Text(i18n.T(ctx, "beta.footnote"))),
	})
}

// surveyView is the manual two step confirmation. The survey is external and
// nothing verifies it was completed.
func surveyView(ctx context.Context, v ModalView) g.Node {
	target := "#" + ModalID(v.Variant)
	return h.Form(
		h.Class("lead-survey"),
		g.Attr("hx-target", target),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-disabled-elt", "find button"),
		hiddenFields(v.Fields),
		h.H3(g.Text(i18n.T(ctx, "beta.survey_title"))),
		h.P(g.Text(i18n.T(ctx, "beta.survey_body"))),
		h.P(h.Class("lead-hint"), g.Text(i18n.T(ctx, "beta.survey_hint"))),
		h.A(
			h.Class("btn btn-primary"),
			h.Href(v.SurveyURL),
			h.Target("_blank"),
			h.Rel("noopener noreferrer"),
			g.Text(i18n.T(ctx, "beta.survey_open")),
		),
		h.P(g.Text(i18n.T(ctx, "beta.survey_after"))),
		h.Div(
			h.Class("lead-actions"),
			h.Button(
				h.Type("button"),
				h.Class("btn btn-outline"),
				g.Attr("hx-post", "/leads/beta/back"),
				g.Text(i18n.T(ctx, "beta.back")),
			),
			submitButton(i18n.T(ctx, "beta.confirm"), i18n.T(ctx, "beta.confirming"),
				h.Type("button"),
				g.Attr("hx-post", "/leads/beta/confirm"),
			),
		),
	)
}

func successView(ctx context.Context, v ModalView) g.Node {
	prefix := "waitlist."
	if v.Variant == models.FormBeta {
		prefix = "beta."
	}
	return h.Div(
		h.Class("lead-success"),
		g.If(v.Burst != nil, g.Attr("data-burst", JSON(v.Burst))),
		h.H3(g.Text(i18n.T(ctx, prefix+"success_title"))),
		h.P(g.Text(i18n.T(ctx, prefix+"success_body", map[string]any{"brand": v.Brand}))),
	)
}

func field(ctx context.Context, v ModalView, name, inputType, labelKey, placeholderKey string) g.Node {
	id := string(v.Variant) + "-" + name
	errMsg := v.State.Errors[name]

	classes := []string{"lead-input"}
	if errMsg != "" {
		classes = append(classes, "invalid")
	}

	return h.Div(
		h.Class("lead-field"),
		h.Label(h.For(id), g.Text(i18n.T(ctx, labelKey))),
		h.Input(
			h.ID(id),
			h.Type(inputType),
			h.Name(name),
			h.Value(v.Fields.Field(name)),
			h.Placeholder(i18n.T(ctx, placeholderKey)),
			h.Class(strings.Join(classes, " ")),
			g.If(errMsg != "", h.Aria("invalid", "true")),
		),
		g.If(errMsg != "", h.P(h.Class("lead-field-error"), g.Text(errMsg))),
	)
}

// hiddenFields carries the entered values through the survey step
func hiddenFields(s models.ContactSubmission) g.Node {
	return g.Group([]g.Node{
		h.Input(h.Type("hidden"), h.Name("stage"), h.Value(leadform.SurveyStage.String())),
		h.Input(h.Type("hidden"), h.Name("name"), h.Value(s.Name)),
		h.Input(h.Type("hidden"), h.Name("email"), h.Value(s.Email)),
		h.Input(h.Type("hidden"), h.Name("phone"), h.Value(s.Phone)),
		h.Input(h.Type("hidden"), h.Name("company"), h.Value(s.Company)),
	})
}

// submitButton shows busyLabel while htmx has the request in flight
func submitButton(label, busyLabel string, attrs ...g.Node) g.Node {
	return h.Button(
		h.Class("btn btn-primary lead-submit"),
		g.Group(attrs),
		h.Span(h.Class("idle-label"), g.Text(label)),
		h.Span(h.Class("busy-label"), g.Text(busyLabel)),
	)
}
