package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"communityfix-be/config"
	"communityfix-be/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func issueDoc(id, owner primitive.ObjectID, status models.IssueStatus) bson.D {
	now := time.Now()
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "Pothole"},
		{Key: "description", Value: "Deep pothole near the crossing"},
		{Key: "location", Value: "Main St & 5th"},
		{Key: "category", Value: "infrastructure"},
		{Key: "status", Value: string(status)},
		{Key: "user_id", Value: owner},
		{Key: "user_email", Value: "owner@example.com"},
		{Key: "created_at", Value: now},
		{Key: "updated_at", Value: now},
	}
}

func deleteIssueReq(userID string, issueID primitive.ObjectID) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/issues/:id", func(c *gin.Context) { c.Set("user_id", userID) }, DeleteIssue)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/issues/"+issueID.Hex(), nil)
	r.ServeHTTP(w, req)
	return w
}

func patchStatusReq(issueID primitive.ObjectID, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PATCH("/issues/:id/status", UpdateIssueStatus)
	w := httptest.NewRecorder()
	body := `{"status":"` + target + `"}`
	req := httptest.NewRequest(http.MethodPatch, "/issues/"+issueID.Hex()+"/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestDeleteIssueNonOwnerForbidden(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("non-owner delete is forbidden", func(mt *mtest.T) {
		config.UseDatabase(mt.Client.Database("communityfix"))

		issueID := primitive.NewObjectID()
		owner := primitive.NewObjectID()
		stranger := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "communityfix.issues", mtest.FirstBatch,
			issueDoc(issueID, owner, models.UnderReview)))

		w := deleteIssueReq(stranger.Hex(), issueID)

		assert.Equal(mt, http.StatusForbidden, w.Code)
	})
}

func TestUpdateIssueStatusTerminalConflict(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("completed issue admits no further transition", func(mt *mtest.T) {
		config.UseDatabase(mt.Client.Database("communityfix"))

		issueID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "communityfix.issues", mtest.FirstBatch,
			issueDoc(issueID, primitive.NewObjectID(), models.Completed)))

		w := patchStatusReq(issueID, "In Progress")

		assert.Equal(mt, http.StatusConflict, w.Code)
	})

	mt.Run("stage skipping is rejected", func(mt *mtest.T) {
		config.UseDatabase(mt.Client.Database("communityfix"))

		issueID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, "communityfix.issues", mtest.FirstBatch,
			issueDoc(issueID, primitive.NewObjectID(), models.UnderReview)))

		w := patchStatusReq(issueID, "Completed")

		assert.Equal(mt, http.StatusConflict, w.Code)
	})
}

func TestUpdateIssueStatusConcurrentAdvanceConflicts(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("update conditioned on observed status loses the race cleanly", func(mt *mtest.T) {
		config.UseDatabase(mt.Client.Database("communityfix"))

		issueID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "communityfix.issues", mtest.FirstBatch,
				issueDoc(issueID, primitive.NewObjectID(), models.UnderReview)),
			// Another admin advanced the issue between our read and write:
			// the status-conditioned update matches nothing.
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 0},
				bson.E{Key: "nModified", Value: 0},
			),
		)

		w := patchStatusReq(issueID, "In Progress")

		assert.Equal(mt, http.StatusConflict, w.Code)
	})
}

func TestUpdateIssueStatusAdvances(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("immediate successor transition succeeds", func(mt *mtest.T) {
		config.UseDatabase(mt.Client.Database("communityfix"))

		issueID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "communityfix.issues", mtest.FirstBatch,
				issueDoc(issueID, primitive.NewObjectID(), models.UnderReview)),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
		)

		w := patchStatusReq(issueID, "In Progress")

		assert.Equal(mt, http.StatusOK, w.Code)
		assert.Contains(mt, w.Body.String(), "In Progress")
	})
}
