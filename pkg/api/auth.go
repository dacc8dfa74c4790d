package api

// VerifyEmailRequest представляет запрос на отправку кода подтверждения
type VerifyEmailRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// VerificationTicket представляет ответ сервера на запрос подтверждения email.
// Сервер возвращает произвольное тело, клиенту важны только message и data.
type VerificationTicket struct {
	Data    map[string]any `json:"data,omitempty"`
	Message string         `json:"message,omitempty"`
}

// RegisterRequest представляет запрос на регистрацию по одноразовому коду
type RegisterRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenData содержит токены и профиль пользователя.
// Login и register заполняют все поля, refresh только AccessToken и TTL.
type TokenData struct {
	AccessToken  string `json:"access_token"`            // короткоживущий access token
	RefreshToken string `json:"refresh_token,omitempty"` // долгоживущий refresh token
	TTL          string `json:"ttl"`                     // время жизни access token, например "15m"
	ID           string `json:"id,omitempty"`
	Email        string `json:"email,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
}

// TokenResponse представляет ответ login/register/refresh
type TokenResponse struct {
	Data TokenData `json:"data"`
}

// ErrorDetail содержит структурированное описание ошибки
type ErrorDetail struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse представляет ответ с ошибкой.
// Сервер присылает либо {"error":{"message":...}}, либо {"message":...}.
type ErrorResponse struct {
	Error   *ErrorDetail `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
}

// ErrorMessage returns the most specific message in the response, if any.
func (r ErrorResponse) ErrorMessage() string {
	if r.Error != nil && r.Error.Message != "" {
		return r.Error.Message
	}
	return r.Message
}
