package controllers

import (
	"context"
	"encoding/json"
	"go-canteen/middleware"
	"go-canteen/models"
	"go-canteen/utils"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the 10 rounds the seeded accounts were hashed with
const bcryptCost = 10

// StudentController handles signup, login and profile requests
type StudentController struct {
	Collection *mongo.Collection
	validate   *validator.Validate
}

// NewStudentController creates a new StudentController
func NewStudentController(client *mongo.Client) *StudentController {
	return &StudentController{
		Collection: client.Database(utils.DatabaseName).Collection("students"),
		validate:   validator.New(),
	}
}

// SignupRequest is the student registration payload
type SignupRequest struct {
	StudentID int64  `json:"student_id" validate:"required"`
	Password  string `json:"password" validate:"required"`
	Name      string `json:"name" validate:"required"`
	PhNo      string `json:"ph_no" validate:"required"`
	DeptName  string `json:"dept_name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// Signup handles student registration
func (sc *StudentController) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := sc.validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := sc.Collection.CountDocuments(ctx, bson.M{"student_id": req.StudentID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Student already registered")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	student := models.Student{
		StudentID: req.StudentID,
		Name:      req.Name,
		PhNo:      req.PhNo,
		DeptName:  req.DeptName,
		Email:     req.Email,
		Password:  string(hashedPassword),
		CreatedAt: time.Now(),
	}
	if _, err := sc.Collection.InsertOne(ctx, student); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"message": "Signup successful"})
}

// Login handles student authentication, returning a 1-hour token and the
// student record
func (sc *StudentController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		StudentID int64  `json:"student_id"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var student models.Student
	err := sc.Collection.FindOne(ctx, bson.M{"student_id": creds.StudentID}).Decode(&student)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(creds.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Incorrect password")
		return
	}

	token, err := utils.GenerateStudentToken(student.StudentID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	student.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token, "user": student})
}

// pathStudentID extracts and checks the student_id path parameter against
// the token's identity. The token is the source of truth; a mismatched path
// is rejected rather than trusted.
func pathStudentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return 0, false
	}
	id, err := strconv.ParseInt(mux.Vars(r)["student_id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid student ID")
		return 0, false
	}
	if id != claims.StudentID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return 0, false
	}
	return id, true
}

// GetProfile retrieves the authenticated student's profile
func (sc *StudentController) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathStudentID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var student models.Student
	if err := sc.Collection.FindOne(ctx, bson.M{"student_id": id}).Decode(&student); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Student not found")
		return
	}

	student.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, student)
}

// UpdateProfile applies the allowlisted profile fields. Identifiers, the
// password hash and loyalty points are not reachable through this endpoint.
func (sc *StudentController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathStudentID(w, r)
	if !ok {
		return
	}

	var req struct {
		Name     *string `json:"name"`
		PhNo     *string `json:"ph_no"`
		DeptName *string `json:"dept_name"`
		Email    *string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.PhNo != nil {
		set["ph_no"] = *req.PhNo
	}
	if req.DeptName != nil {
		set["dept_name"] = *req.DeptName
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if len(set) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No updatable fields provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var student models.Student
	err := sc.Collection.FindOneAndUpdate(
		ctx,
		bson.M{"student_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&student)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "Student not found")
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	student.Password = ""
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Profile updated successfully", "student": student})
}
