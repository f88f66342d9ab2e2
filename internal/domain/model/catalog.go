package model

import "time"

// ClassFather is a top level material classification.
type ClassFather struct {
	ID         string     `json:"_id"`
	FatherName string     `json:"fatherName"`
	Sons       []ClassSon `json:"sonNames"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// ClassSon is a classification nested under a ClassFather.
type ClassSon struct {
	ID        string    `json:"_id"`
	FatherID  string    `json:"fatherName"`
	SonName   string    `json:"sonName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Material is a catalog item that orders may reference.
type Material struct {
	ID                  string       `json:"_id"`
	MaterialName        string       `json:"materialName"`
	SerialNumber        string       `json:"serialNumber"`
	ClassificationID    string       `json:"classification"`
	ClassificationName  string       `json:"classificationName,omitempty"`
	ClassificationSonID *string      `json:"classificationSon"`
	AttachedFile        AttachedFile `json:"attachedFile"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

// CatalogFilter narrows classification and material listings.
type CatalogFilter struct {
	Search string
	Page   PageRequest
}
