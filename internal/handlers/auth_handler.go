package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"accountsvc/internal/models"
	"accountsvc/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerResponse struct {
	Message string `json:"message"`
	models.RegisterResult
}

type loginResponse struct {
	Message string `json:"message"`
	models.LoginResult
}

type googleResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"accessToken"`
}

// @Summary      Регистрация
// @Description  Создаёт пользователя и возвращает пару токенов
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.RegisterRequest  true  "Данные пользователя"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, "register", &req) {
		return
	}
	res, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "register", err)
		return
	}
	c.JSON(http.StatusCreated, registerResponse{Message: "User registered successfully", RegisterResult: *res})
}

// @Summary      Вход в систему
// @Description  Проверяет email и пароль, возвращает токены доступа
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.LoginRequest  true  "Данные для входа"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, "login", &req) {
		return
	}
	res, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "login", err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Message: "Login successful", LoginResult: *res})
}

// @Summary      Вход через Google
// @Description  Принимает профиль Google, создаёт пользователя при первом входе. Возвращает только access-токен.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.GoogleProfile  true  "Профиль Google"
// @Success      200   {object}  googleResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/google [post]
func (h *AuthHandler) GoogleRegister(c *gin.Context) {
	var profile models.GoogleProfile
	if !bindJSON(c, "google", &profile) {
		return
	}
	token, err := h.authService.GoogleRegister(c.Request.Context(), &profile)
	if err != nil {
		respondError(c, "google", err)
		return
	}
	c.JSON(http.StatusOK, googleResponse{Message: "Google login successful", AccessToken: token})
}

// @Summary      Отправить OTP
// @Description  Отправляет одноразовый код на email ещё не зарегистрированного пользователя
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.SendOTPRequest  true  "Email"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/send-otp [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req models.SendOTPRequest
	if !bindJSON(c, "send-otp", &req) {
		return
	}
	if err := h.authService.SendOTP(c.Request.Context(), req.Email); err != nil {
		respondError(c, "send-otp", err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "OTP sent to email"})
}

// @Summary      Проверить OTP
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.VerifyOTPRequest  true  "Email и код"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if !bindJSON(c, "verify-otp", &req) {
		return
	}
	if err := h.authService.VerifyOTP(c.Request.Context(), &req); err != nil {
		respondError(c, "verify-otp", err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "OTP verified"})
}

// @Summary      Обновить токены
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.RefreshRequest  true  "Refresh-токен"
// @Success      200   {object}  models.TokenPair
// @Failure      400   {object}  errorResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshRequest
	if !bindJSON(c, "refresh", &req) {
		return
	}
	pair, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, "refresh", err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// @Summary      Текущий пользователь
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "Unauthorized"})
		return
	}
	user, err := h.authService.Me(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "me", err)
		return
	}
	c.JSON(http.StatusOK, user)
}
