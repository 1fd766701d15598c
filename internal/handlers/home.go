package handlers

// HomeData is the view model for the landing page.
type HomeData struct {
	Services []ServiceCard
}

// ServiceCard summarizes one offering on the landing page.
type ServiceCard struct {
	Type        string // "resume", "cover-letter", "linkedin", "bundle"
	TitleKey    string
	BlurbKey    string
	PriceKey    string
	OrderHref   string
	Highlight   bool
	FeatureKeys []string
}

// BuildHomeData constructs the default view model for the landing page.
func BuildHomeData() HomeData {
	return HomeData{
		Services: []ServiceCard{
			{
				Type:      "resume",
				TitleKey:  "home.service.resume.title",
				BlurbKey:  "home.service.resume.blurb",
				PriceKey:  "home.service.resume.price",
				OrderHref: "/order/resume",
				FeatureKeys: []string{
					"home.service.resume.f1",
					"home.service.resume.f2",
					"home.service.resume.f3",
				},
			},
			{
				Type:      "cover-letter",
				TitleKey:  "home.service.cover.title",
				BlurbKey:  "home.service.cover.blurb",
				PriceKey:  "home.service.cover.price",
				OrderHref: "/order/cover-letter",
				FeatureKeys: []string{
					"home.service.cover.f1",
					"home.service.cover.f2",
				},
			},
			{
				Type:      "linkedin",
				TitleKey:  "home.service.linkedin.title",
				BlurbKey:  "home.service.linkedin.blurb",
				PriceKey:  "home.service.linkedin.price",
				OrderHref: "/order/linkedin",
				FeatureKeys: []string{
					"home.service.linkedin.f1",
					"home.service.linkedin.f2",
				},
			},
			{
				Type:      "bundle",
				TitleKey:  "home.service.bundle.title",
				BlurbKey:  "home.service.bundle.blurb",
				PriceKey:  "home.service.bundle.price",
				OrderHref: "/order/bundle",
				Highlight: true,
				FeatureKeys: []string{
					"home.service.bundle.f1",
					"home.service.bundle.f2",
					"home.service.bundle.f3",
				},
			},
		},
	}
}

// SEOData is a lightweight metadata holder rendered in the layout head.
type SEOData struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          struct {
		Title       string
		Description string
		Image       string
		Type        string
		URL         string
		SiteName    string
	}
}
