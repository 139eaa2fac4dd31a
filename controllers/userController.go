package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"communityfix-be/config"
	"communityfix-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetProfile returns the authenticated user's profile, merging the identity
// row with the denormalized profiles projection and preferring projection
// values when present.
func GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := config.GetCollection("users").FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	name, phone := user.Name, user.Phone

	var profile models.Profile
	if err := config.GetCollection("profiles").FindOne(ctx, bson.M{"_id": objectID}).Decode(&profile); err == nil {
		if profile.Name != "" {
			name = profile.Name
		}
		if profile.Phone != "" {
			phone = profile.Phone
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"name":      name,
		"email":     user.Email,
		"phone":     phone,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	})
}

// UpdateProfile updates the user's name and phone. The identity row is the
// primary write; the profiles projection is refreshed best-effort afterward.
func UpdateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		Name  string `json:"name" binding:"required,max=50"`
		Phone string `json:"phone" binding:"omitempty,max=20"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users := config.GetCollection("users")

	update := bson.M{"$set": bson.M{
		"name":      input.Name,
		"phone":     input.Phone,
		"updatedAt": time.Now(),
	}}
	if _, err := users.UpdateOne(ctx, bson.M{"_id": objectID}, update); err != nil {
		log.Println("Error updating user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	var user models.User
	if err := users.FindOne(ctx, bson.M{"_id": objectID}).Decode(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load updated profile"})
		return
	}

	upsertProfile(ctx, &user)

	c.JSON(http.StatusOK, gin.H{
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"phone":   user.Phone,
		"role":    user.Role,
		"message": "Profile updated successfully",
	})
}

// ChangePassword sets a new credential for the authenticated user. The
// currentPassword field is accepted for form compatibility but is not
// verified against the stored credential; possession of a valid session is
// the only check.
func ChangePassword(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword" binding:"required,min=6"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.NewPassword != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	user := models.User{Password: input.NewPassword}
	if err := user.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"password": user.Password, "updatedAt": time.Now()}}
	if _, err := config.GetCollection("users").UpdateOne(ctx, bson.M{"_id": objectID}, update); err != nil {
		log.Println("Error updating password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
