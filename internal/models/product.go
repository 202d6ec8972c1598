package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product representa un producto en el catálogo.
// Category es nil para registros legacy que nunca tuvieron el campo;
// "" significa "sin categoría".
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Price       int64              `json:"price" bson:"price"`
	Quantity    int64              `json:"quantity" bson:"quantity"`
	Brand       string             `json:"brand" bson:"brand"`
	Description string             `json:"description" bson:"description"`
	Category    *string            `json:"category" bson:"category,omitempty"`
}

// CategoryID devuelve la categoría asignada o "" si no hay ninguna
func (p *Product) CategoryID() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}

// SetCategory asigna la categoría (un id en hex, o "" para quitarla)
func (p *Product) SetCategory(id string) {
	p.Category = &id
}

// ProductCreate representa el payload de creación.
// Price y Quantity son punteros para distinguir "ausente" de 0.
type ProductCreate struct {
	Name        string  `json:"name" binding:"required"`
	Price       *int64  `json:"price" binding:"required,gte=0"`
	Quantity    *int64  `json:"quantity" binding:"required,gte=0"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Category    *string `json:"category,omitempty"`
}
