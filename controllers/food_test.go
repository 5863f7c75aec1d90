package controllers

import (
	"bytes"
	"encoding/json"
	"go-canteen/models"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFood(t *testing.T, fc *FoodController, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/admin/food-items", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	fc.Create(rec, req)
	return rec
}

func TestCreateFoodRequiresNamePriceCategory(t *testing.T) {
	fc := &FoodController{validate: validator.New()}

	cases := []models.FoodItem{
		{},
		// no category
		{Name: "Samosa", Price: 1500},
		// no price
		{Name: "Samosa", Category: models.CategorySnacks},
		// no name
		{Price: 1500, Category: models.CategorySnacks},
		// unknown category
		{Name: "Samosa", Price: 1500, Category: "Midnight Specials"},
	}
	for i, c := range cases {
		rec := createFood(t, fc, c)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "case %d", i)
	}
}

func TestCreateFoodRejectsMalformedBody(t *testing.T) {
	fc := &FoodController{validate: validator.New()}
	req := httptest.NewRequest("POST", "/admin/food-items", bytes.NewReader([]byte(`[]`)))
	rec := httptest.NewRecorder()
	fc.Create(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateFoodRejectsBadID(t *testing.T) {
	fc := &FoodController{validate: validator.New()}
	req := httptest.NewRequest("PUT", "/admin/food-items/nope", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	fc.Update(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
