package controllers

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"communityfix-be/config"
	"communityfix-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// imageObjectKey builds the storage path for an uploaded issue image:
// owner id, upload timestamp, a fixed before/after suffix, and the original
// file extension.
func imageObjectKey(userID, suffix, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d-%s%s", userID, now.UnixMilli(), suffix, filepath.Ext(filename))
}

// validateSubmission checks the required free-text fields after trimming.
// Returns the missing-field error message, or ok=true.
func validateSubmission(title, description, location string) (string, bool) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" || strings.TrimSpace(location) == "" {
		return "Please fill in all required fields", false
	}
	return "", true
}

// uploadFormImage pushes one multipart image to object storage and returns
// its object key and public URL.
func uploadFormImage(ctx context.Context, file *multipart.FileHeader, userID, suffix string) (key string, url string, err error) {
	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	key = imageObjectKey(userID, suffix, file.Filename, time.Now())
	if err := config.UploadIssueImage(ctx, key, src, file.Size, file.Header.Get("Content-Type")); err != nil {
		return "", "", err
	}
	return key, config.PublicImageURL(key), nil
}

// CreateIssue handles the submission of a new issue report. The request is a
// multipart form carrying the text fields plus optional before_image and
// after_image files. Images are uploaded first; the row insert follows with
// status fixed to "Under Review". If the insert fails after an upload
// succeeded, the uploaded objects are removed best-effort so they do not
// linger orphaned in the bucket.
func CreateIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	createdByID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	location := c.PostForm("location")
	category := c.DefaultPostForm("category", string(models.General))

	if msg, ok := validateSubmission(title, description, location); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	if !models.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := config.GetCollection("users").FindOne(ctx, bson.M{"_id": createdByID}).Decode(&user); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var uploadedKeys []string
	var beforeImageURL, afterImageURL *string

	if file, err := c.FormFile("before_image"); err == nil {
		key, url, err := uploadFormImage(ctx, file, createdByID.Hex(), "before")
		if err != nil {
			log.Println("Error uploading before image:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit issue. Please try again."})
			return
		}
		uploadedKeys = append(uploadedKeys, key)
		beforeImageURL = &url
	}

	if file, err := c.FormFile("after_image"); err == nil {
		key, url, err := uploadFormImage(ctx, file, createdByID.Hex(), "after")
		if err != nil {
			log.Println("Error uploading after image:", err)
			cleanupUploads(uploadedKeys)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit issue. Please try again."})
			return
		}
		uploadedKeys = append(uploadedKeys, key)
		afterImageURL = &url
	}

	issue := models.Issue{
		ID:             primitive.NewObjectID(),
		Title:          strings.TrimSpace(title),
		Description:    strings.TrimSpace(description),
		Location:       strings.TrimSpace(location),
		Category:       models.IssueCategory(category),
		Status:         models.UnderReview,
		UserID:         createdByID,
		UserEmail:      user.Email,
		BeforeImageURL: beforeImageURL,
		AfterImageURL:  afterImageURL,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if _, err := config.GetCollection("issues").InsertOne(ctx, issue); err != nil {
		log.Println("Error inserting issue:", err)
		cleanupUploads(uploadedKeys)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit issue. Please try again."})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// cleanupUploads removes objects uploaded during a submission that could not
// complete. Removal failures are logged only.
func cleanupUploads(keys []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, key := range keys {
		if err := config.RemoveIssueImage(ctx, key); err != nil {
			log.Printf("Failed to clean up uploaded object %s: %v", key, err)
		}
	}
}

// issueListFilter translates the optional status/completed query parameters
// into a Mongo filter. An absent or "all" status means no status predicate.
func issueListFilter(status string, completedOnly bool) (bson.M, error) {
	filter := bson.M{}
	if completedOnly {
		filter["status"] = models.Completed
		return filter, nil
	}
	if status != "" && status != "all" {
		if !models.ValidStatus(status) {
			return nil, fmt.Errorf("invalid status %q", status)
		}
		filter["status"] = models.IssueStatus(status)
	}
	return filter, nil
}

// GetAllIssues returns every issue report ordered by creation time
// descending. Supports an optional status equality filter and a
// completed-only variant for the public dashboard.
func GetAllIssues(c *gin.Context) {
	filter, err := issueListFilter(c.Query("status"), c.Query("completed") == "true")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := config.GetCollection("issues").Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetMyIssues returns the authenticated user's issue reports, newest first,
// with the same optional status filter as GetAllIssues.
func GetMyIssues(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userObjID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	filter, err := issueListFilter(c.Query("status"), false)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	filter["user_id"] = userObjID

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := config.GetCollection("issues").Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := []models.Issue{}
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetIssue retrieves a single issue by its ID
func GetIssue(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = config.GetCollection("issues").FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

// DeleteIssue allows the owner of an issue report to delete it
func DeleteIssue(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userObjID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = config.GetCollection("issues").FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if issue.UserID != userObjID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this issue"})
		return
	}

	if _, err := config.GetCollection("issues").DeleteOne(ctx, bson.M{"_id": issueID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

// UpdateIssueStatus advances an issue's status. Admin only. The workflow is
// strictly forward-only: Under Review -> In Progress -> Completed, one stage
// at a time, and Completed is terminal. The updated row is returned so the
// caller can reconcile its optimistic local merge.
func UpdateIssueStatus(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}
	target := models.IssueStatus(input.Status)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	issues := config.GetCollection("issues")

	var issue models.Issue
	err = issues.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if !issue.Status.CanAdvanceTo(target) {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("Cannot move issue from %q to %q", issue.Status, target),
		})
		return
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{"status": target, "updated_at": now}}
	// The update is conditioned on the status just observed, so a concurrent
	// advance cannot be overwritten with its predecessor.
	res, err := issues.UpdateOne(ctx, bson.M{"_id": issueID, "status": issue.Status}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Issue status changed concurrently, please refresh"})
		return
	}

	issue.Status = target
	issue.UpdatedAt = now
	c.JSON(http.StatusOK, issue)
}
