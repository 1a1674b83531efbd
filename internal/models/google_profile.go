package models

// GoogleProfile — профиль, пришедший от Google после OAuth.
// Все поля необязательные, правила по умолчанию применяет AuthService.
type GoogleProfile struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"displayName"`
	Emails      []ProfileValue `json:"emails"`
	Photos      []ProfileValue `json:"photos"`
}

type ProfileValue struct {
	Value string `json:"value"`
}

func (p *GoogleProfile) FirstEmail() string {
	if p == nil || len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0].Value
}

func (p *GoogleProfile) FirstPhoto() *string {
	if p == nil || len(p.Photos) == 0 || p.Photos[0].Value == "" {
		return nil
	}
	v := p.Photos[0].Value
	return &v
}
