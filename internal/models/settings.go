package models

const (
	SettingSiteTitle       = "seo_site_title"
	SettingSiteDescription = "seo_site_description"
	SettingKeywords        = "seo_keywords"
	SettingOGImage         = "seo_og_image"
	SettingTwitterHandle   = "seo_twitter_handle"
	SettingCanonicalURL    = "seo_canonical_url"
)

var SEOSettingKeys = []string{
	SettingSiteTitle,
	SettingSiteDescription,
	SettingKeywords,
	SettingOGImage,
	SettingTwitterHandle,
	SettingCanonicalURL,
}

type SEOSettings struct {
	SiteTitle       string `json:"site_title"`
	SiteDescription string `json:"site_description"`
	Keywords        string `json:"keywords"`
	OGImage         string `json:"og_image"`
	TwitterHandle   string `json:"twitter_handle"`
	CanonicalURL    string `json:"canonical_url"`
}

func DefaultSEOSettings() SEOSettings {
	return SEOSettings{
		SiteTitle:       "Provaa - Culinary Experiences",
		SiteDescription: "Discover and book unique culinary experiences hosted by local chefs.",
		Keywords:        "culinary experiences, cooking classes, food tours, supper clubs",
		OGImage:         "/og-image.png",
		TwitterHandle:   "@provaa",
		CanonicalURL:    "https://provaa.com",
	}
}

// SEOSettingsFromMap overlays the stored key/value pairs on the defaults.
// Empty values count as absent.
func SEOSettingsFromMap(values map[string]string) SEOSettings {
	s := DefaultSEOSettings()

	set := func(key string, dst *string) {
		if v, ok := values[key]; ok && v != "" {
			*dst = v
		}
	}

	set(SettingSiteTitle, &s.SiteTitle)
	set(SettingSiteDescription, &s.SiteDescription)
	set(SettingKeywords, &s.Keywords)
	set(SettingOGImage, &s.OGImage)
	set(SettingTwitterHandle, &s.TwitterHandle)
	set(SettingCanonicalURL, &s.CanonicalURL)

	return s
}
