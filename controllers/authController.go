package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"communityfix-be/config"
	"communityfix-be/models"
	authUtils "communityfix-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// upsertProfile writes the denormalized profile projection for a user.
// Failures are logged and swallowed: profile writes are best-effort side
// writes and never fail the primary operation.
func upsertProfile(ctx context.Context, user *models.User) {
	profile := models.ProfileFromUser(user)
	opts := options.Replace().SetUpsert(true)
	_, err := config.GetCollection("profiles").ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile, opts)
	if err != nil {
		log.Println("Error upserting profile:", err)
	}
}

// RegisterUser handles user registration
func RegisterUser(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required,max=50"`
		Email       string `json:"email" binding:"required,email"`
		Phone       string `json:"phone" binding:"omitempty,max=20"`
		Password    string `json:"password" binding:"required,min=6"`
		AcceptTerms bool   `json:"acceptTerms" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(input.Email))

	// The on-blur probe is advisory only; this is the authoritative check.
	count, err := users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		log.Println("Error checking existing user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This email is already registered"})
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Email:     email,
		Phone:     input.Phone,
		Role:      models.RoleUser,
		Password:  input.Password,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := user.HashPassword(); err != nil {
		log.Println("Error hashing password:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	if _, err := users.InsertOne(ctx, user); err != nil {
		log.Println("Error inserting user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	upsertProfile(ctx, &user)

	c.JSON(http.StatusCreated, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"createdAt": user.CreatedAt,
	})
}

// CheckEmail is the on-blur signup probe: it answers whether an email is
// already registered. The check consults the profiles projection first and
// falls back to the users collection when the projection is missing the row.
// The outcome is advisory; RegisterUser re-validates authoritatively.
func CheckEmail(c *gin.Context) {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := config.GetCollection("profiles").CountDocuments(ctx, bson.M{"email": email})
	if err != nil || count == 0 {
		count, err = config.GetCollection("users").CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("Error probing email:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"exists": count > 0})
}

// LoginUser handles user login
func LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users := config.GetCollection("users")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := users.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.ComparePassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := authUtils.GenerateAndSetToken(user.ID.Hex(), string(user.Role))
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	setAuthCookie(c, token, int(authUtils.TokenTTL/time.Second))

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"role":      user.Role,
		"token":     token,
		"createdAt": user.CreatedAt,
	})
}

// GetMe retrieves the authenticated user's information
func GetMe(c *gin.Context) {
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
	err = config.GetCollection("users").FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"phone":     user.Phone,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	})
}

// LogoutUser handles user logout by clearing the auth_token cookie
func LogoutUser(c *gin.Context) {
	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	c.SetCookie("auth_token", "", -1, "/", domain, environment == "production", true)
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// ForgotPassword dispatches a password-reset link for the given email. The
// response is deliberately generic whether or not the email is registered.
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := config.GetCollection("users").FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
	if err == nil {
		token, err := authUtils.CreateResetToken(user.ID.Hex())
		if err != nil {
			log.Println("Error creating reset token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		if err := authUtils.SendPasswordResetLink(user.Email, token); err != nil {
			log.Println("Error sending reset link:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If that email is registered, a password reset link has been sent",
	})
}

// ResetPassword consumes a reset token and sets a new credential. All
// sessions issued before the reset stop validating, so the user must log in
// again with the new password.
func ResetPassword(c *gin.Context) {
	var input struct {
		Token           string `json:"token" binding:"required"`
		Password        string `json:"password" binding:"required,min=6"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Password != input.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	userID, ok, err := authUtils.ConsumeResetToken(input.Token)
	if err != nil {
		log.Println("Error consuming reset token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired reset token"})
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	user := models.User{Password: input.Password}
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	if err := authUtils.StampPasswordReset(userID); err != nil {
		log.Println("Error stamping password reset:", err)
	}

	// Clear any session cookie so the browser must re-authenticate.
	environment := os.Getenv("GO_ENV")
	c.SetCookie("auth_token", "", -1, "/", os.Getenv("DOMAIN"), environment == "production", true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Your password has been reset successfully! Please log in with your new password.",
	})
}

// setAuthCookie attaches the session token cookie with environment-dependent
// domain and security flags.
func setAuthCookie(c *gin.Context, token string, maxAge int) {
	environment := os.Getenv("GO_ENV")
	domain := os.Getenv("DOMAIN")

	// For production, don't set domain to allow cross-origin cookies
	if environment == "production" {
		domain = ""
	}

	cookie := &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		MaxAge:   maxAge,
		Path:     "/",
		Domain:   domain,
		Secure:   environment == "production",
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	}
	http.SetCookie(c.Writer, cookie)
}
