package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category agrupa productos; Title funciona como clave secundaria
type Category struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title" binding:"required"`
	Description string             `json:"description" bson:"description"`
}

// CategoryUpdate representa los campos actualizables de una categoría
type CategoryUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}
