package controllers

import (
	"applicant-tracking-api/config"
	"applicant-tracking-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func getDB() *gorm.DB { return config.DB }

func getCurrentUserID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("userID"); ok {
		switch t := v.(type) {
		case int:
			return t, true
		case int64:
			return int(t), true
		case float64:
			return int(t), true
		case uint:
			return int(t), true
		}
	}
	return 0, false
}

func getCurrentEmail(c *gin.Context) string {
	if v, ok := c.Get("email"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getCurrentRoleID(c *gin.Context) (int, bool) {
	if v, ok := c.Get("roleID"); ok {
		switch t := v.(type) {
		case int:
			return t, true
		case int64:
			return int(t), true
		case float64:
			return int(t), true
		case uint:
			return int(t), true
		}
	}
	return 0, false
}

func currentActor(c *gin.Context) services.Actor {
	uid, _ := getCurrentUserID(c)
	return services.Actor{UserID: uid, Email: getCurrentEmail(c)}
}

func uintPtr(v int) *uint {
	u := uint(v)
	return &u
}
