package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// IDLength is the length of every store generated identifier.
const IDLength = 24

// ID identifies a stored record. It is the hex form of a BSON ObjectID so that
// ids and shareable links can be told apart by length alone.
type ID string

func NewID() ID {
	return ID(bson.NewObjectID().Hex())
}

// ParseID validates s as a store id.
func ParseID(s string) (ID, bool) {
	oid, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return "", false
	}
	return ID(oid.Hex()), true
}

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return id == "" }
