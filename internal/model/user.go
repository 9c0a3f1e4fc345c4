package model

import "go.mongodb.org/mongo-driver/v2/bson"

// User represents a buyer account
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string        `bson:"firstName" json:"firstName"`
	LastName  string        `bson:"lastName" json:"lastName"`
	Email     string        `bson:"email" json:"email"`
	Password  string        `bson:"password" json:"-"`
}

// Creator represents a course author account. Creators live in their own
// collection and are a disjoint identity space from users.
type Creator struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string        `bson:"firstName" json:"firstName"`
	LastName  string        `bson:"lastName" json:"lastName"`
	Email     string        `bson:"email" json:"email"`
	Password  string        `bson:"password" json:"-"`
}
