package pages

import (
	"proply_app_go/config"
	"proply_app_go/services/onboarding"
	"proply_app_go/templates/components"
)

// LandingView holds the data for the landing page
type LandingView struct {
	Content *config.Content
	// Plan is the intro timeline replayed by landing.js
	Plan   onboarding.Plan
	Nonce  string
	Locale string
	// CSRFToken is sent by htmx with every modal post
	CSRFToken string
	// ResetOnOpen asks the page to re-request a modal on open
	ResetOnOpen bool
	Waitlist    components.ModalView
	Beta        components.ModalView
}
