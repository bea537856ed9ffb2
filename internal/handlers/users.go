package handlers

import (
	"github.com/NE-Resources-2025/VRS/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListUsers handles the equality-filter collection query the client uses
// for login (email+password) and for the registration pre-check (email
// only). Credentials that match no record produce an empty array, never an
// error status.
func ListUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email")
		password := c.Query("password")

		if email == "" {
			var users []models.User
			if err := db.Find(&users).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch users"})
				return
			}
			c.JSON(200, users)
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(200, []models.User{})
			return
		}

		if password != "" && user.CheckPassword(password) != nil {
			c.JSON(200, []models.User{})
			return
		}

		c.JSON(200, []models.User{user})
	}
}

// GetUser retrieves a single user by id
func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}
		c.JSON(200, user)
	}
}

// CreateUser registers a new account. The unique index on email is the
// authority on uniqueness; the explicit check just produces a friendlier
// conflict message.
func CreateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     string `json:"name" binding:"required"`
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(409, gin.H{"error": "Email already exists"})
			return
		}

		user := models.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: input.Password,
		}
		if err := user.HashPassword(); err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		if err := db.Create(&user).Error; err != nil {
			c.JSON(409, gin.H{"error": "Email already exists"})
			return
		}

		c.JSON(201, user)
	}
}

// UpdateUser applies a partial profile update
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name     *string `json:"name"`
			Email    *string `json:"email"`
			Password *string `json:"password"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Email != nil && *input.Email != user.Email {
			var existing models.User
			if err := db.Where("email = ? AND id <> ?", *input.Email, user.ID).First(&existing).Error; err == nil {
				c.JSON(409, gin.H{"error": "Email already exists"})
				return
			}
			user.Email = *input.Email
		}
		if input.Password != nil && *input.Password != "" {
			user.Password = *input.Password
			if err := user.HashPassword(); err != nil {
				c.JSON(500, gin.H{"error": "Failed to hash password"})
				return
			}
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update user"})
			return
		}

		c.JSON(200, user)
	}
}
