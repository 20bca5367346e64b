// Package student persists enrollment records in the students collection.
package student

import "go.mongodb.org/mongo-driver/v2/bson"

// Student is one enrollment record. Email and UserID are each unique
// across the collection; the unique indexes are the authoritative guard.
type Student struct {
	ID                bson.ObjectID `bson:"_id,omitempty"`
	Email             string        `bson:"email"`
	FirstName         string        `bson:"first_name"`
	LastName          string        `bson:"last_name"`
	UserID            string        `bson:"user_id"`
	PasswordHash      string        `bson:"password"`
	HasLoggedInBefore bool          `bson:"has_logged_in_before"`
}
