package googleauth

// tokenInfo ответ tokeninfo endpoint (поля приходят строками)
type tokenInfo struct {
	Aud           string `json:"aud"`
	Azp           string `json:"azp"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Exp           string `json:"exp"`
	ExpiresIn     string `json:"expires_in"`
}

// Identity проверенные данные Google аккаунта
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}
