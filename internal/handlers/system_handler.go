package handlers

import (
	"net/http"

	"shoppos/internal/database"
	"shoppos/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetSystemStatus tells the terminal's settings screen which device this is
// and whether the database is reachable.
func GetSystemStatus(c *gin.Context) {
	dbStatus := "online"
	if err := database.Ping(); err != nil {
		dbStatus = "unreachable"
	}

	c.JSON(http.StatusOK, gin.H{
		"device_id": utils.GetDeviceID(),
		"database":  dbStatus,
	})
}
