package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Token is the per-user session record created on first login. The refresh
// secret is reused while the record stays valid; an invalidated record must
// never be exchanged for new claims.
type Token struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	RefreshToken string             `bson:"refresh_token" json:"-"`
	IP           string             `bson:"ip" json:"ip"`
	UserAgent    string             `bson:"user_agent" json:"user_agent"`
	IsValid      bool               `bson:"is_valid" json:"is_valid"`
}
