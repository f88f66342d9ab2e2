package usecase

import (
	"context"

	"github.com/polkiloo/procurement/internal/domain/model"
	"github.com/polkiloo/procurement/internal/domain/repository"
)

// FatherInput is the payload of a top level classification.
type FatherInput struct {
	FatherName string `json:"fatherName" validate:"required,max=100"`
}

// SonInput is the payload of a nested classification.
type SonInput struct {
	FatherID string `json:"fatherName" validate:"required"`
	SonName  string `json:"sonName" validate:"required,max=100"`
}

// SonPatch carries the fields of a partial son update.
type SonPatch struct {
	FatherID *string `json:"fatherName" validate:"omitnil,min=1"`
	SonName  *string `json:"sonName" validate:"omitnil,min=1,max=100"`
}

// MaterialInput is the payload of a new catalog material.
type MaterialInput struct {
	MaterialName        string              `json:"materialName" validate:"required,max=100"`
	SerialNumber        string              `json:"serialNumber" validate:"required,max=100"`
	ClassificationID    string              `json:"classification" validate:"required"`
	ClassificationSonID *string             `json:"classificationSon" validate:"omitempty,min=1"`
	AttachedFile        *model.AttachedFile `json:"attachedFile"`
}

// MaterialPatch carries the fields of a partial material update.
type MaterialPatch struct {
	MaterialName        *string             `json:"materialName" validate:"omitnil,min=1,max=100"`
	SerialNumber        *string             `json:"serialNumber" validate:"omitnil,min=1,max=100"`
	ClassificationID    *string             `json:"classification" validate:"omitnil,min=1"`
	ClassificationSonID *string             `json:"classificationSon"`
	AttachedFile        *model.AttachedFile `json:"attachedFile"`
}

// ClassificationUseCase manages the two level material taxonomy.
type ClassificationUseCase struct {
	classes repository.ClassificationRepository
}

// NewClassificationUseCase constructs ClassificationUseCase.
func NewClassificationUseCase(classes repository.ClassificationRepository) *ClassificationUseCase {
	return &ClassificationUseCase{classes: classes}
}

func (u *ClassificationUseCase) CreateFather(ctx context.Context, in FatherInput) (*model.ClassFather, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	father := &model.ClassFather{FatherName: in.FatherName, Sons: []model.ClassSon{}}
	if err := u.classes.CreateFather(ctx, father); err != nil {
		return nil, translateStoreError(err)
	}
	return father, nil
}

func (u *ClassificationUseCase) UpdateFather(ctx context.Context, id string, in FatherInput) (*model.ClassFather, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	father := &model.ClassFather{ID: id, FatherName: in.FatherName}
	if err := u.classes.UpdateFather(ctx, father); err != nil {
		return nil, translateStoreError(err)
	}
	return u.classes.GetFather(ctx, id)
}

// DeleteFather removes a classification. It fails with ErrInUse while sons or materials reference it.
func (u *ClassificationUseCase) DeleteFather(ctx context.Context, id string) error {
	return u.classes.DeleteFather(ctx, id)
}

func (u *ClassificationUseCase) ListFathers(ctx context.Context, filter model.CatalogFilter) (model.Page[model.ClassFather], error) {
	return u.classes.ListFathers(ctx, filter)
}

func (u *ClassificationUseCase) CreateSon(ctx context.Context, in SonInput) (*model.ClassSon, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	son := &model.ClassSon{FatherID: in.FatherID, SonName: in.SonName}
	if err := u.classes.CreateSon(ctx, son); err != nil {
		return nil, translateStoreError(err)
	}
	return son, nil
}

func (u *ClassificationUseCase) UpdateSon(ctx context.Context, id string, patch SonPatch) (*model.ClassSon, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	son, err := u.classes.GetSon(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.FatherID != nil {
		son.FatherID = *patch.FatherID
	}
	if patch.SonName != nil {
		son.SonName = *patch.SonName
	}
	if err := u.classes.UpdateSon(ctx, son); err != nil {
		return nil, translateStoreError(err)
	}
	return son, nil
}

// DeleteSon removes a nested classification. It fails with ErrInUse while materials reference it.
func (u *ClassificationUseCase) DeleteSon(ctx context.Context, id string) error {
	return u.classes.DeleteSon(ctx, id)
}

func (u *ClassificationUseCase) ListSons(ctx context.Context) ([]model.ClassSon, error) {
	return u.classes.ListSons(ctx)
}

// MaterialUseCase manages the materials catalog.
type MaterialUseCase struct {
	materials repository.MaterialRepository
}

// NewMaterialUseCase constructs MaterialUseCase.
func NewMaterialUseCase(materials repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{materials: materials}
}

func (u *MaterialUseCase) Create(ctx context.Context, in MaterialInput) (*model.Material, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	material := &model.Material{
		MaterialName:        in.MaterialName,
		SerialNumber:        in.SerialNumber,
		ClassificationID:    in.ClassificationID,
		ClassificationSonID: in.ClassificationSonID,
		AttachedFile:        model.NormalizeFile(in.AttachedFile),
	}
	if err := u.materials.Create(ctx, material); err != nil {
		return nil, translateStoreError(err)
	}
	return u.materials.GetByID(ctx, material.ID)
}

// Update applies patch to material id. A missing file keeps the stored reference.
func (u *MaterialUseCase) Update(ctx context.Context, id string, patch MaterialPatch) (*model.Material, error) {
	if err := validateInput(patch); err != nil {
		return nil, err
	}
	material, err := u.materials.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.MaterialName != nil {
		material.MaterialName = *patch.MaterialName
	}
	if patch.SerialNumber != nil {
		material.SerialNumber = *patch.SerialNumber
	}
	if patch.ClassificationID != nil {
		material.ClassificationID = *patch.ClassificationID
	}
	if patch.ClassificationSonID != nil {
		if *patch.ClassificationSonID == "" {
			material.ClassificationSonID = nil
		} else {
			material.ClassificationSonID = patch.ClassificationSonID
		}
	}
	if patch.AttachedFile != nil {
		material.AttachedFile = *patch.AttachedFile
	}
	if err := u.materials.Update(ctx, material); err != nil {
		return nil, translateStoreError(err)
	}
	return u.materials.GetByID(ctx, id)
}

func (u *MaterialUseCase) Delete(ctx context.Context, id string) error {
	return u.materials.Delete(ctx, id)
}

func (u *MaterialUseCase) List(ctx context.Context, filter model.CatalogFilter) (model.Page[model.Material], error) {
	return u.materials.List(ctx, filter)
}
