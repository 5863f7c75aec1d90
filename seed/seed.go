package seed

import (
	"context"
	"fmt"
	"go-canteen/models"
	"go-canteen/utils"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type sampleStudent struct {
	studentID     int64
	name          string
	phNo          string
	loyaltyPoints int
	deptName      string
	password      string
}

var sampleStudents = []sampleStudent{
	{102, "Ankur Kumar Chowdhary", "9876543210", 20, "Mechanical", "ankur123"},
	{103, "Md Qamar Hussain", "8765432109", 35, "Electrical", "qamar123"},
	{104, "Faizan Talib Khan", "7654321098", 50, "Civil", "faizan123"},
	{105, "Vikram Rajak", "6543210987", 15, "Computer Science", "vikram123"},
}

// Run upserts the admin account and the sample students, then returns.
// Admin credentials come from ADMIN_USERNAME / ADMIN_PASSWORD.
func Run(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := client.Database(utils.DatabaseName)

	if err := seedAdmin(ctx, db.Collection("admins")); err != nil {
		return err
	}
	return seedStudents(ctx, db.Collection("students"))
}

func seedAdmin(ctx context.Context, coll *mongo.Collection) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set to seed the admin account")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	admin := models.Admin{Username: username, Password: string(hashed), Role: "admin"}
	_, err = coll.UpdateOne(ctx,
		bson.M{"username": username},
		bson.M{"$set": admin},
		options.Update().SetUpsert(true),
	)
	return err
}

func seedStudents(ctx context.Context, coll *mongo.Collection) error {
	for _, s := range sampleStudents {
		hashed, err := bcrypt.GenerateFromPassword([]byte(s.password), bcryptCost)
		if err != nil {
			return err
		}
		student := models.Student{
			StudentID:     s.studentID,
			Name:          s.name,
			PhNo:          s.phNo,
			DeptName:      s.deptName,
			LoyaltyPoints: s.loyaltyPoints,
			Password:      string(hashed),
			CreatedAt:     time.Now(),
		}
		_, err = coll.UpdateOne(ctx,
			bson.M{"student_id": s.studentID},
			bson.M{"$set": student},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
