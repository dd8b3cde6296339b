package handlers

import "github.com/gin-gonic/gin"

func errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func dataResponse(c *gin.Context, status int, payload any) {
	c.JSON(status, gin.H{"data": payload})
}
