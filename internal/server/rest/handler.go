package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gymfitness/membership/internal/common"
	"github.com/gymfitness/membership/internal/server/services"
)

type signUpRequest struct {
	FirstName  string `json:"firstname" binding:"required,max=50"`
	Surname    string `json:"surname" binding:"required,max=50"`
	Email      string `json:"email" binding:"required,email,max=100"`
	Password   string `json:"password" binding:"required,min=6,max=120"`
	BankNo     string `json:"bankno" binding:"max=20"`
	ClearingNo string `json:"clearingno" binding:"max=10"`
	Level      string `json:"level"`
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=120"`
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type signInResponse struct {
	AccessToken string   `json:"accessToken"`
	TokenType   string   `json:"tokenType"`
	ID          string   `json:"id"`
	FirstName   string   `json:"firstname"`
	Surname     string   `json:"surname"`
	Email       string   `json:"email"`
	Levels      []string `json:"levels"`
}

const (
	msgRegistered      = "User registered successfully!"
	msgPasswordChanged = "Password changed successfully!"
	msgCancelled       = "Membership cancelled successfully!"
)

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) signUp(c *gin.Context) {
	var req signUpRequest
	if !s.bind(c, &req) {
		return
	}

	_, err := s.auth.SignUp(c.Request.Context(), services.SignUpInput{
		FirstName:  req.FirstName,
		Surname:    req.Surname,
		Email:      req.Email,
		Password:   req.Password,
		BankNo:     req.BankNo,
		ClearingNo: req.ClearingNo,
		Level:      req.Level,
	})
	if err != nil {
		s.fail(c, "signup", err)
		return
	}

	s.metrics.authOutcome("signup", outcomeOK)
	respondMessage(c, http.StatusOK, msgRegistered)
}

func (s *HTTPServer) signIn(c *gin.Context) {
	var req credentialsRequest
	if !s.bind(c, &req) {
		return
	}

	res, err := s.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, "signin", err)
		return
	}

	s.metrics.authOutcome("signin", outcomeOK)
	c.JSON(http.StatusOK, signInResponse{
		AccessToken: res.Token,
		TokenType:   common.TokenType,
		ID:          res.UserID,
		FirstName:   res.FirstName,
		Surname:     res.Surname,
		Email:       res.Email,
		Levels:      res.Levels,
	})
}

func (s *HTTPServer) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if !s.bind(c, &req) {
		return
	}

	if err := s.auth.ChangePassword(c.Request.Context(), req.Email, req.Password); err != nil {
		s.fail(c, "changepass", err)
		return
	}

	s.metrics.authOutcome("changepass", outcomeOK)
	respondMessage(c, http.StatusOK, msgPasswordChanged)
}

func (s *HTTPServer) cancel(c *gin.Context) {
	var req emailRequest
	if !s.bind(c, &req) {
		return
	}

	if err := s.auth.Cancel(c.Request.Context(), req.Email); err != nil {
		s.fail(c, "cancel", err)
		return
	}

	s.metrics.authOutcome("cancel", outcomeOK)
	respondMessage(c, http.StatusOK, msgCancelled)
}

func (s *HTTPServer) me(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondMessage(c, http.StatusUnauthorized, msgUnauthorized)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        claims.UserID,
		"firstname": claims.FirstName,
		"surname":   claims.Surname,
		"email":     claims.Email,
		"levels":    claims.Levels,
	})
}

func (s *HTTPServer) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		s.requestLogger(c).Debug(c.Request.Context(), "bad request", "error", err)
		respondMessage(c, http.StatusBadRequest, "Error: "+err.Error())
		return false
	}
	return true
}
