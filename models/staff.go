package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff is a municipal worker that issues can be assigned to. Created by an admin.
type Staff struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Number    string             `bson:"number,omitempty" json:"number,omitempty"`
	District  string             `bson:"district,omitempty" json:"district,omitempty"`
	Region    string             `bson:"region,omitempty" json:"region,omitempty"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Status    string             `bson:"status,omitempty" json:"status,omitempty"`
	Password  string             `bson:"password,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (s *Staff) HashPassword() error {
	if s.Password == "" {
		return nil
	}
	hashed, err := hashPassword(s.Password)
	if err != nil {
		return err
	}
	s.Password = hashed
	return nil
}

func (s *Staff) ComparePassword(candidate string) bool {
	return comparePassword(s.Password, candidate)
}
