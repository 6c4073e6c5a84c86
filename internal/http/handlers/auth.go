package handlers

import (
	"net/http"

	"casebackend/internal/auth"
	"casebackend/internal/http/middleware"
	"casebackend/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves /api/auth.
type AuthHandler struct {
	Users  services.UserStore
	Signer auth.Signer
	// BcryptCost overrides the hashing cost; tests lower it.
	BcryptCost int
}

func (h AuthHandler) service(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     h.Users,
		Signer:    h.Signer,
		RequestID: middleware.GetRequestID(c),
		Cost:      h.BcryptCost,
	}
}

type loginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	token, user, err := h.service(c).Login(c.Request.Context(), req.Mobile, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// POST /api/auth/register
func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := h.service(c).Register(c.Request.Context(), req.Name, req.Mobile, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "registered",
		"user":    user,
	})
}
