package model

const (
	SettingTypeSecurity = "security"
)

type SystemSetting struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type SystemSettingSecurity struct {
	JWTSecret string `json:"jwt_secret"`
}
