package controllers

import (
	"context"
	"encoding/json"
	"go-canteen/models"
	"go-canteen/utils"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// AdminController handles admin authentication
type AdminController struct {
	Collection *mongo.Collection
}

// NewAdminController creates a new AdminController
func NewAdminController(client *mongo.Client) *AdminController {
	return &AdminController{
		Collection: client.Database(utils.DatabaseName).Collection("admins"),
	}
}

// Login authenticates an admin and returns a 2-hour token carrying the
// admin role
func (ac *AdminController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	err := ac.Collection.FindOne(ctx, bson.M{"username": creds.Username}).Decode(&admin)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Admin not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(creds.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := utils.GenerateAdminToken(admin.Username)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"token": token})
}
