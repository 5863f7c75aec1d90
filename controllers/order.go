package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"go-canteen/middleware"
	"go-canteen/models"
	"go-canteen/utils"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// tokenDrawAttempts bounds the redraws against same-day active orders; with
// a full house of 100 active tokens there is no unique number left to find.
const tokenDrawAttempts = 5

// OrderController handles order placement, history aggregation and the
// admin order views
type OrderController struct {
	Client        *mongo.Client
	OrderColl     *mongo.Collection
	OrderItemColl *mongo.Collection
	FoodColl      *mongo.Collection
	StudentColl   *mongo.Collection
	EmailService  *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(client *mongo.Client, emailService *utils.EmailService) *OrderController {
	db := client.Database(utils.DatabaseName)
	return &OrderController{
		Client:        client,
		OrderColl:     db.Collection("orders"),
		OrderItemColl: db.Collection("orderitems"),
		FoodColl:      db.Collection("fooditems"),
		StudentColl:   db.Collection("students"),
		EmailService:  emailService,
	}
}

// CartLine is one entry of the client-submitted cart. The _id key carries
// the food item's document id, matching what the menu endpoint returned.
type CartLine struct {
	FoodID        string       `json:"_id"`
	Quantity      int          `json:"quantity"`
	Customization string       `json:"customization"`
	Price         models.Money `json:"price"`
}

// PlaceOrderRequest is the order placement payload
type PlaceOrderRequest struct {
	CartItems           []CartLine   `json:"cartItems"`
	TotalPrice          models.Money `json:"total_price"`
	PaymentMode         string       `json:"payment_mode"`
	OrderType           string       `json:"order_type"`
	PickupTime          string       `json:"pickup_time"`
	SpecialInstructions string       `json:"specialInstructions"`
}

// orderError carries the HTTP status for a failure inside the placement
// transaction
type orderError struct {
	code int
	msg  string
}

func (e *orderError) Error() string { return e.msg }

// PlaceOrder creates an order and its line items. The order insert, the
// item inserts and the stock decrements run in one session transaction, so
// a failure partway through leaves nothing behind.
func (oc *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.CartItems) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if !models.ValidPaymentMode(req.PaymentMode) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payment mode")
		return
	}
	type resolvedLine struct {
		CartLine
		foodID primitive.ObjectID
	}
	lines := make([]resolvedLine, 0, len(req.CartItems))
	for _, line := range req.CartItems {
		if line.Quantity < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Quantity must be at least 1")
			return
		}
		foodID, err := primitive.ObjectIDFromHex(line.FoodID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid food item ID in cart")
			return
		}
		lines = append(lines, resolvedLine{CartLine: line, foodID: foodID})
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	var student models.Student
	if err := oc.StudentColl.FindOne(ctx, bson.M{"student_id": claims.StudentID}).Decode(&student); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Student not found")
		return
	}

	order := models.Order{
		OrderID:             utils.NewOrderID(),
		StudentID:           student.ID,
		PaymentMode:         req.PaymentMode,
		TotalPrice:          req.TotalPrice,
		Status:              models.StatusOrdered,
		TokenNumber:         oc.drawTokenNumber(ctx),
		OrderType:           req.OrderType,
		PickupTime:          req.PickupTime,
		SpecialInstructions: req.SpecialInstructions,
		CreatedAt:           time.Now(),
	}
	if order.OrderType == "" {
		order.OrderType = "Dine In"
	}
	if order.PickupTime == "" {
		order.PickupTime = "ASAP"
	}

	session, err := oc.Client.StartSession()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := oc.OrderColl.InsertOne(sc, order)
		if err != nil {
			return nil, err
		}
		orderID := result.InsertedID.(primitive.ObjectID)

		for _, line := range lines {
			// Conditional decrement: matches only while stock covers the line
			update, err := oc.FoodColl.UpdateOne(sc,
				bson.M{"_id": line.foodID, "available_qty": bson.M{"$gte": line.Quantity}},
				bson.M{"$inc": bson.M{"available_qty": -line.Quantity}},
			)
			if err != nil {
				return nil, err
			}
			if update.MatchedCount == 0 {
				count, err := oc.FoodColl.CountDocuments(sc, bson.M{"_id": line.foodID})
				if err != nil {
					return nil, err
				}
				if count == 0 {
					return nil, &orderError{http.StatusNotFound, fmt.Sprintf("Food item %s not found", line.FoodID)}
				}
				return nil, &orderError{http.StatusBadRequest, "Insufficient stock for an item in your cart"}
			}

			item := models.OrderItem{
				OrderItemID:   utils.NewOrderItemID(),
				OrderID:       orderID,
				FoodID:        line.foodID,
				Quantity:      line.Quantity,
				Customization: line.Customization,
				PriceAtTime:   line.Price,
			}
			if _, err := oc.OrderItemColl.InsertOne(sc, item); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		if oe, ok := err.(*orderError); ok {
			utils.RespondWithError(w, oe.code, oe.msg)
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	if student.Email != "" && oc.EmailService.Enabled() {
		go func() {
			err := oc.EmailService.SendOrderConfirmationEmail(
				student.Email, student.Name, order.OrderID,
				order.TokenNumber, order.TotalPrice.String(),
				order.PickupTime, order.PaymentMode,
			)
			if err != nil {
				log.Printf("Failed to send confirmation email to %s: %v", student.Email, err)
			}
		}()
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message":      "Order placed successfully",
		"order_id":     order.OrderID,
		"token_number": order.TokenNumber,
		"total_price":  order.TotalPrice,
		"pickup_time":  order.PickupTime,
		"payment_mode": order.PaymentMode,
	})
}

// drawTokenNumber picks a pickup token in [1,100], redrawing while the
// number is already held by one of today's unfinished orders. After
// tokenDrawAttempts the last draw stands.
func (oc *OrderController) drawTokenNumber(ctx context.Context) int {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	token := utils.DrawTokenNumber()
	for i := 0; i < tokenDrawAttempts; i++ {
		count, err := oc.OrderColl.CountDocuments(ctx, bson.M{
			"token_number": token,
			"status":       bson.M{"$ne": models.StatusPaid},
			"created_at":   bson.M{"$gte": startOfDay},
		})
		if err != nil || count == 0 {
			break
		}
		token = utils.DrawTokenNumber()
	}
	return token
}

// OrderLineView is one display line of an aggregated order
type OrderLineView struct {
	Name     string       `json:"name"`
	ImageURL string       `json:"image_url"`
	Quantity int          `json:"quantity"`
	Price    models.Money `json:"price"`
}

// OrderSummary is one order enriched with its lines for display
type OrderSummary struct {
	OrderID     string          `json:"order_id"`
	TotalPrice  models.Money    `json:"total_price"`
	TokenNumber int             `json:"token_number"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []OrderLineView `json:"items"`
}

// buildHistory joins a student's orders with their items and the referenced
// food items, newest order first. A food item deleted since the order was
// placed degrades to "Unknown Item" rather than failing the request.
func (oc *OrderController) buildHistory(ctx context.Context, studentID primitive.ObjectID) ([]OrderSummary, error) {
	cursor, err := oc.OrderColl.Find(ctx,
		bson.M{"student_id": studentID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}

	history := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		itemCursor, err := oc.OrderItemColl.Find(ctx, bson.M{"order_id": order.ID})
		if err != nil {
			return nil, err
		}
		var items []models.OrderItem
		err = itemCursor.All(ctx, &items)
		if err != nil {
			return nil, err
		}

		lines := make([]OrderLineView, 0, len(items))
		for _, item := range items {
			line := OrderLineView{
				Name:     "Unknown Item",
				Quantity: item.Quantity,
				Price:    item.PriceAtTime,
			}
			var food models.FoodItem
			if err := oc.FoodColl.FindOne(ctx, bson.M{"_id": item.FoodID}).Decode(&food); err == nil {
				line.Name = food.Name
				line.ImageURL = food.ImageURL
			}
			lines = append(lines, line)
		}

		history = append(history, OrderSummary{
			OrderID:     order.OrderID,
			TotalPrice:  order.TotalPrice,
			TokenNumber: order.TokenNumber,
			Status:      order.Status,
			CreatedAt:   order.CreatedAt,
			Items:       lines,
		})
	}
	return history, nil
}

// GetOrderHistory returns the aggregated order history for the student
// identified by the token
func (oc *OrderController) GetOrderHistory(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var student models.Student
	if err := oc.StudentColl.FindOne(ctx, bson.M{"student_id": claims.StudentID}).Decode(&student); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Student not found")
		return
	}

	history, err := oc.buildHistory(ctx, student.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order history")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, history)
}

// GetOrderHistoryByStudent returns any student's aggregated history, keyed
// by the path parameter (Admin only)
func (oc *OrderController) GetOrderHistoryByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.ParseInt(mux.Vars(r)["student_id"], 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	var student models.Student
	if err := oc.StudentColl.FindOne(ctx, bson.M{"student_id": studentID}).Decode(&student); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Student not found")
		return
	}

	history, err := oc.buildHistory(ctx, student.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order history")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, history)
}

// AdminOrderView is an order annotated with its owner for the admin list
type AdminOrderView struct {
	models.Order
	StudentNo   int64  `json:"student_no"`
	StudentName string `json:"student_name"`
}

// ListOrders returns every order, newest first, annotated with the owning
// student (Admin only)
func (oc *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	cursor, err := oc.OrderColl.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	students := map[primitive.ObjectID]models.Student{}
	views := make([]AdminOrderView, 0, len(orders))
	for _, order := range orders {
		student, cached := students[order.StudentID]
		if !cached {
			// Missing owner tolerated; the order still lists
			_ = oc.StudentColl.FindOne(ctx, bson.M{"_id": order.StudentID}).Decode(&student)
			students[order.StudentID] = student
		}
		views = append(views, AdminOrderView{
			Order:       order,
			StudentNo:   student.StudentID,
			StudentName: student.Name,
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}
