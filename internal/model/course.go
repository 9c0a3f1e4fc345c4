package model

import "go.mongodb.org/mongo-driver/v2/bson"

// Course represents a purchasable course authored by a creator
type Course struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string        `bson:"title" json:"title"`
	Description string        `bson:"description" json:"description"`
	Price       float64       `bson:"price" json:"price"`
	ImageURL    string        `bson:"imageUrl" json:"imageUrl"`
	CreatorID   bson.ObjectID `bson:"creatorId" json:"creatorId"`
}

// Purchase links a user to a course they bought. The referenced course is
// not guaranteed to still exist; lookups resolve it best-effort.
type Purchase struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"id"`
	CourseID bson.ObjectID `bson:"courseId" json:"courseId"`
	UserID   bson.ObjectID `bson:"userId" json:"userId"`
}
