package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Tougashi/Stunting-sub001/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// AuthController ...
type AuthController struct {
	Tokens *service.TokenService
}

// TokenValid ...
func (a *AuthController) TokenValid(c *gin.Context) {
	tokenAuth, err := a.Tokens.ExtractTokenMetadata(c.Request)
	if err != nil {
		//Token either expired or not valid
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Please login first"})
		return
	}

	c.Set("UserId", tokenAuth.UserID)
	c.Set("UserName", tokenAuth.UserName)
}

// Refresh ...
func (a *AuthController) Refresh(c *gin.Context) {
	accessToken := a.Tokens.ExtractToken(c.Request)

	token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
		//Make sure that the token method conform to "SigningMethodHMAC"
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.Tokens.Secret), nil
	})
	//if there is an error, the token must have expired
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid authorization, please login again")
		return
	}

	claims, okClaims := token.Claims.(jwt.MapClaims)
	if !okClaims || !token.Valid {
		fail(c, http.StatusUnauthorized, "Invalid authorization, please login again")
		return
	}

	userID, err := strconv.ParseInt(fmt.Sprintf("%.f", claims["user_id"]), 10, 64)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid authorization, please login again")
		return
	}

	userName, okName := claims["user_name"].(string)
	if !okName {
		fail(c, http.StatusUnauthorized, "Invalid authorization, please login again")
		return
	}

	ts, createErr := a.Tokens.CreateToken(uint(userID), userName)
	if createErr != nil {
		fail(c, http.StatusForbidden, "Invalid authorization, please login again")
		return
	}

	ok(c, http.StatusOK, gin.H{"token": ts.AccessToken})
}
