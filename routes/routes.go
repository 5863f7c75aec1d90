package routes

import (
	"fmt"
	"go-canteen/controllers"
	"go-canteen/middleware"
	"go-canteen/ratelim"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	rateLimiter *ratelim.RateLimiter,
	studentController *controllers.StudentController,
	adminController *controllers.AdminController,
	foodController *controllers.FoodController,
	orderController *controllers.OrderController,
) {
	// Root health check
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Root is working")
	}).Methods("GET")

	// Public routes; credential endpoints are rate limited per IP
	router.Handle("/student/signup", rateLimiter.Limit(http.HandlerFunc(studentController.Signup))).Methods("POST")
	router.Handle("/login", rateLimiter.Limit(http.HandlerFunc(studentController.Login))).Methods("POST")
	router.Handle("/admin/login", rateLimiter.Limit(http.HandlerFunc(adminController.Login))).Methods("POST")
	router.HandleFunc("/food-items", foodController.List).Methods("GET")

	// Student routes
	student := router.PathPrefix("/").Subrouter()
	student.Use(middleware.Authenticate, middleware.RequireStudent)
	student.HandleFunc("/profile/{student_id}", studentController.GetProfile).Methods("GET")
	student.HandleFunc("/profile/{student_id}", studentController.UpdateProfile).Methods("PUT")
	student.HandleFunc("/place-order", orderController.PlaceOrder).Methods("POST")
	student.HandleFunc("/order-history", orderController.GetOrderHistory).Methods("GET")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Authenticate, middleware.RequireAdmin)
	admin.HandleFunc("/food-items", foodController.Create).Methods("POST")
	admin.HandleFunc("/food-items/{id}", foodController.Update).Methods("PUT")
	admin.HandleFunc("/food-items/{id}", foodController.Delete).Methods("DELETE")
	admin.HandleFunc("/orders", orderController.ListOrders).Methods("GET")
	admin.HandleFunc("/order-history/{student_id}", orderController.GetOrderHistoryByStudent).Methods("GET")
}
