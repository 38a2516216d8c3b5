package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleCitizen = "citizen"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

const (
	AccountActive  = "active"
	AccountBlocked = "blocked"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Photo         string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role          string             `bson:"role" json:"role"`
	AccountStatus string             `bson:"accountStatus" json:"accountStatus"`
	IsSubscribed  bool               `bson:"isSubscribed" json:"isSubscribed"`
	PlanType      string             `bson:"planType,omitempty" json:"planType,omitempty"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaidAt        *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	Password      string             `bson:"password,omitempty" json:"-"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HashPassword replaces the plain password with its bcrypt hash. An empty
// password is left empty; such accounts cannot use local login.
func (u *User) HashPassword() error {
	if u.Password == "" {
		return nil
	}
	hashed, err := hashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	return comparePassword(u.Password, candidate)
}

func hashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func comparePassword(hash, candidate string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
