package main

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/dashboard_backend/config"
	"github.com/mmdatafocus/dashboard_backend/models"
	"github.com/mmdatafocus/dashboard_backend/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func secureCookies() bool {
	return strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production")
}

func registerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			config.LogError(config.GetLogger(), "authHandlers.go", "registerHandler", "HashPassword", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		user := models.User{Email: req.Email, HashedPassword: string(hashed)}
		if err := config.GetDB().WithContext(c.Request.Context()).Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "Duplicate entry") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "email already registered"})
				return
			}
			config.LogError(config.GetLogger(), "authHandlers.go", "registerHandler", "create user", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"id": user.ID, "email": user.Email})
	}
}

func loginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var req credentialsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
			return
		}

		user, err := models.GetUserByEmail(c.Request.Context(), config.GetDB(), req.Email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			config.LogError(logger, "authHandlers.go", "loginHandler", "GetUserByEmail", req.Email, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}

		if err := utils.ComparePassword(user.HashedPassword, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := utils.JwtGenerate(user.ID, user.Email)
		if err != nil {
			config.LogError(logger, "authHandlers.go", "loginHandler", "JwtGenerate", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}

		lifespan := utils.TokenLifespan()
		// Session record: logout revokes by deleting it. Best-effort, since
		// login must succeed even when Redis is down.
		if err := config.SetRedisValue("Token:"+token, user.Email, lifespan); err != nil {
			logger.WithFields(logrus.Fields{
				"module": "authHandlers.go",
				"email":  user.Email,
			}).Warn("could not store session record: " + err.Error())
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie("token", token, int(lifespan.Seconds()), "/", "", secureCookies(), true)
		c.JSON(http.StatusOK, gin.H{
			"id":      user.ID,
			"email":   user.Email,
			"message": "Login successful",
		})
	}
}

func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := utils.GetTokenFromContext(c.Request.Context()); ok && token != "" {
			if err := config.RemoveRedisKey("Token:" + token); err != nil {
				config.GetLogger().WithFields(logrus.Fields{
					"module": "authHandlers.go",
				}).Warn("could not remove session record: " + err.Error())
			}
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie("token", "", -1, "/", "", secureCookies(), true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

func meHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := utils.GetUserIdFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		email, _ := utils.GetUserEmailFromContext(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"userId": userId,
			"email":  email,
		})
	}
}
