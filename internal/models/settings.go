package models

// Settings holds the company branding configuration. A single row (id=1)
// exists per deployment.
type Settings struct {
	ID                  int64  `json:"id" db:"id"`
	CompanyName         string `json:"company_name" db:"company_name"`
	HeaderColor         string `json:"header_color" db:"header_color"`
	FooterText          string `json:"footer_text" db:"footer_text"`
	FooterColor         string `json:"footer_color" db:"footer_color"`
	ActiveNavIndexColor string `json:"active_nav_index_color" db:"active_nav_index_color"`
	CompanyNameColor    string `json:"company_name_color" db:"company_name_color"`
	FooterTextColor     string `json:"footer_text_color" db:"footer_text_color"`
	LogoURL             string `json:"logo_url" db:"logo_url"`
}
