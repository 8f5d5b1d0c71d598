package domain

import "time"

// SiteContentID is the key of the single editable home page document.
const SiteContentID = "homePage"

// TrustIndicators are the short counters shown under the hero section.
type TrustIndicators struct {
	RepairsCompleted string
	AvgTurnaround    string
	Satisfaction     string
	SupportHours     string
}

// ContactInfo is the footer contact block.
type ContactInfo struct {
	Phone   string
	Email   string
	Address string
}

// SiteContent holds the editable marketing copy for the landing page.
type SiteContent struct {
	ID               string
	HeroTitle        string
	HeroSubtitle     string
	ServicesSubtitle string
	Trust            TrustIndicators
	Contact          ContactInfo
	UpdatedAt        time.Time
}

// DefaultSiteContent returns the copy shipped with the site. Fields that
// fail validation on update fall back to these values.
func DefaultSiteContent() SiteContent {
	return SiteContent{
		ID:               SiteContentID,
		HeroTitle:        "Fast, Reliable IT Repairs",
		HeroSubtitle:     "Computers, printers, CCTV and networks fixed by certified technicians. Book online and track your repair every step of the way.",
		ServicesSubtitle: "From a cracked laptop screen to a full office network, we handle it.",
		Trust: TrustIndicators{
			RepairsCompleted: "5000+",
			AvgTurnaround:    "48h",
			Satisfaction:     "99%",
			SupportHours:     "24/7",
		},
		Contact: ContactInfo{
			Phone:   "+1 (555) 014-7763",
			Email:   "support@fixware.example",
			Address: "12 Harbor St, Springfield",
		},
	}
}
