package controllers

import (
	"context"
	"encoding/json"
	"go-canteen/models"
	"go-canteen/utils"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FoodController handles menu catalog requests
type FoodController struct {
	Collection *mongo.Collection
	validate   *validator.Validate
}

// NewFoodController creates a new FoodController
func NewFoodController(client *mongo.Client) *FoodController {
	return &FoodController{
		Collection: client.Database(utils.DatabaseName).Collection("fooditems"),
		validate:   validator.New(),
	}
}

// List retrieves all food items. Public; filtering happens client-side.
func (fc *FoodController) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := fc.Collection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching food items")
		return
	}
	defer cursor.Close(ctx)

	items := []models.FoodItem{}
	if err := cursor.All(ctx, &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error reading food items")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, items)
}

// Create adds a new food item (Admin only)
func (fc *FoodController) Create(w http.ResponseWriter, r *http.Request) {
	var item models.FoodItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := fc.validate.Struct(item); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, price and category are required")
		return
	}
	if item.FoodID == "" {
		item.FoodID = utils.NewFoodID()
	}
	item.ID = primitive.NilObjectID
	item.CreatedAt = time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := fc.Collection.CountDocuments(ctx, bson.M{"food_id": item.FoodID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Food item already exists")
		return
	}

	result, err := fc.Collection.InsertOne(ctx, item)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add item")
		return
	}
	item.ID = result.InsertedID.(primitive.ObjectID)

	utils.RespondWithJSON(w, http.StatusCreated, item)
}

// Update applies a partial update to a food item by id (Admin only)
func (fc *FoodController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid food item ID")
		return
	}

	var req struct {
		FoodID       *string       `json:"food_id"`
		Name         *string       `json:"name"`
		Description  *string       `json:"description"`
		Price        *models.Money `json:"price"`
		ImageURL     *string       `json:"image_url"`
		AvailableQty *int          `json:"available_qty"`
		Category     *string       `json:"category"`
		Rating       *float64      `json:"rating"`
		ReviewsCount *int          `json:"reviews_count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{}
	if req.FoodID != nil {
		set["food_id"] = *req.FoodID
	}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.ImageURL != nil {
		set["image_url"] = *req.ImageURL
	}
	if req.AvailableQty != nil {
		set["available_qty"] = *req.AvailableQty
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		set["category"] = *req.Category
	}
	if req.Rating != nil {
		set["rating"] = *req.Rating
	}
	if req.ReviewsCount != nil {
		set["reviews_count"] = *req.ReviewsCount
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var item models.FoodItem
	err = fc.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&item)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Food item not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Update failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, item)
}

// Delete removes a food item (Admin only). Deleting an absent item reports
// 404, so a second delete of the same id is never a second success.
func (fc *FoodController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid food item ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	result, err := fc.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Delete failed")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Food item not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Deleted successfully"})
}
