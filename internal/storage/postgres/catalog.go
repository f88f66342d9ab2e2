package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/polkiloo/procurement/internal/domain/model"
)

type classificationRepository struct {
	storage *Storage
}

type materialRepository struct {
	storage *Storage
}

// --- ClassificationRepository implementation ---

const (
	fatherColumns = `id, father_name, created_at, updated_at`
	sonColumns    = `id, father_id, son_name, created_at, updated_at`
)

func scanFather(row pgx.Row) (*model.ClassFather, error) {
	var f model.ClassFather
	if err := row.Scan(&f.ID, &f.FatherName, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	f.Sons = []model.ClassSon{}
	return &f, nil
}

func scanSon(row pgx.Row) (*model.ClassSon, error) {
	var s model.ClassSon
	if err := row.Scan(&s.ID, &s.FatherID, &s.SonName, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *classificationRepository) CreateFather(ctx context.Context, father *model.ClassFather) error {
	const query = `INSERT INTO class_fathers (id, father_name) VALUES ($1, $2) RETURNING created_at, updated_at`
	id := r.storage.ids.NewID()
	if err := r.storage.pool.QueryRow(ctx, query, id, father.FatherName).Scan(&father.CreatedAt, &father.UpdatedAt); err != nil {
		return mapWriteError(err)
	}
	father.ID = id
	return nil
}

func (r *classificationRepository) UpdateFather(ctx context.Context, father *model.ClassFather) error {
	const query = `UPDATE class_fathers SET father_name=$2, updated_at=NOW() WHERE id=$1 RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query, father.ID, father.FatherName).Scan(&father.CreatedAt, &father.UpdatedAt)
	return mapWriteError(err)
}

func (r *classificationRepository) DeleteFather(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM class_fathers WHERE id=$1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return expectAffected(tag)
}

func (r *classificationRepository) GetFather(ctx context.Context, id string) (*model.ClassFather, error) {
	father, err := scanFather(r.storage.pool.QueryRow(ctx, `SELECT `+fatherColumns+` FROM class_fathers WHERE id=$1`, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	sons, err := r.sonsOf(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	father.Sons = append(father.Sons, sons[id]...)
	return father, nil
}

func (r *classificationRepository) ListFathers(ctx context.Context, filter model.CatalogFilter) (model.Page[model.ClassFather], error) {
	cond := &conditions{}
	if filter.Search != "" {
		cond.add("father_name ILIKE $%d", containsPattern(filter.Search))
	}

	page := model.Page[model.ClassFather]{Items: []model.ClassFather{}}
	var err error
	if page.Total, page.FilterNum, err = countPage(ctx, r.storage.pool, "class_fathers", cond); err != nil {
		return model.Page[model.ClassFather]{}, err
	}

	tail, args := pageClause(cond, "created_at", filter.Page)
	rows, err := r.storage.pool.Query(ctx, `SELECT `+fatherColumns+` FROM class_fathers WHERE `+cond.where()+` `+tail, args...)
	if err != nil {
		return model.Page[model.ClassFather]{}, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		f, err := scanFather(rows)
		if err != nil {
			return model.Page[model.ClassFather]{}, err
		}
		page.Items = append(page.Items, *f)
		ids = append(ids, f.ID)
	}
	if err := rows.Err(); err != nil {
		return model.Page[model.ClassFather]{}, err
	}
	rows.Close()

	if len(ids) == 0 {
		return page, nil
	}
	sons, err := r.sonsOf(ctx, ids)
	if err != nil {
		return model.Page[model.ClassFather]{}, err
	}
	for i := range page.Items {
		page.Items[i].Sons = append(page.Items[i].Sons, sons[page.Items[i].ID]...)
	}
	return page, nil
}

func (r *classificationRepository) sonsOf(ctx context.Context, fatherIDs []string) (map[string][]model.ClassSon, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+sonColumns+` FROM class_sons WHERE father_id = ANY($1) ORDER BY created_at DESC`, fatherIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]model.ClassSon, len(fatherIDs))
	for rows.Next() {
		s, err := scanSon(rows)
		if err != nil {
			return nil, err
		}
		result[s.FatherID] = append(result[s.FatherID], *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *classificationRepository) CreateSon(ctx context.Context, son *model.ClassSon) error {
	const query = `INSERT INTO class_sons (id, father_id, son_name) VALUES ($1, $2, $3) RETURNING created_at, updated_at`
	id := r.storage.ids.NewID()
	if err := r.storage.pool.QueryRow(ctx, query, id, son.FatherID, son.SonName).Scan(&son.CreatedAt, &son.UpdatedAt); err != nil {
		return mapWriteError(err)
	}
	son.ID = id
	return nil
}

func (r *classificationRepository) UpdateSon(ctx context.Context, son *model.ClassSon) error {
	const query = `UPDATE class_sons SET father_id=$2, son_name=$3, updated_at=NOW() WHERE id=$1 RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query, son.ID, son.FatherID, son.SonName).Scan(&son.CreatedAt, &son.UpdatedAt)
	return mapWriteError(err)
}

func (r *classificationRepository) DeleteSon(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM class_sons WHERE id=$1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return expectAffected(tag)
}

func (r *classificationRepository) GetSon(ctx context.Context, id string) (*model.ClassSon, error) {
	son, err := scanSon(r.storage.pool.QueryRow(ctx, `SELECT `+sonColumns+` FROM class_sons WHERE id=$1`, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return son, nil
}

func (r *classificationRepository) ListSons(ctx context.Context) ([]model.ClassSon, error) {
	rows, err := r.storage.pool.Query(ctx, `SELECT `+sonColumns+` FROM class_sons ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.ClassSon{}
	for rows.Next() {
		s, err := scanSon(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- MaterialRepository implementation ---

const materialColumns = `m.id, m.material_name, m.serial_number, m.classification_id, COALESCE(f.father_name, ''),
        m.classification_son_id, m.attached_file, m.created_at, m.updated_at`

const materialFrom = ` FROM materials m LEFT JOIN class_fathers f ON f.id = m.classification_id`

func scanMaterial(row pgx.Row) (*model.Material, error) {
	var (
		m    model.Material
		file []byte
	)
	err := row.Scan(&m.ID, &m.MaterialName, &m.SerialNumber, &m.ClassificationID, &m.ClassificationName,
		&m.ClassificationSonID, &file, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := decodeJSON(file, &m.AttachedFile); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *materialRepository) Create(ctx context.Context, material *model.Material) error {
	file, err := encodeJSON(material.AttachedFile)
	if err != nil {
		return err
	}
	const query = `INSERT INTO materials (id, material_name, serial_number, classification_id, classification_son_id, attached_file)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING created_at, updated_at`
	id := r.storage.ids.NewID()
	err = r.storage.pool.QueryRow(ctx, query, id, material.MaterialName, material.SerialNumber,
		material.ClassificationID, material.ClassificationSonID, file).Scan(&material.CreatedAt, &material.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	material.ID = id
	return nil
}

func (r *materialRepository) Update(ctx context.Context, material *model.Material) error {
	file, err := encodeJSON(material.AttachedFile)
	if err != nil {
		return err
	}
	const query = `UPDATE materials SET material_name=$2, serial_number=$3, classification_id=$4,
                   classification_son_id=$5, attached_file=$6, updated_at=NOW()
                   WHERE id=$1
                   RETURNING created_at, updated_at`
	err = r.storage.pool.QueryRow(ctx, query, material.ID, material.MaterialName, material.SerialNumber,
		material.ClassificationID, material.ClassificationSonID, file).Scan(&material.CreatedAt, &material.UpdatedAt)
	return mapWriteError(err)
}

func (r *materialRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM materials WHERE id=$1`, id)
	if err != nil {
		return mapDeleteError(err)
	}
	return expectAffected(tag)
}

func (r *materialRepository) GetByID(ctx context.Context, id string) (*model.Material, error) {
	m, err := scanMaterial(r.storage.pool.QueryRow(ctx, `SELECT `+materialColumns+materialFrom+` WHERE m.id=$1`, id))
	if err != nil {
		return nil, mapReadError(err)
	}
	return m, nil
}

func (r *materialRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Material, error) {
	if len(ids) == 0 {
		return []model.Material{}, nil
	}
	rows, err := r.storage.pool.Query(ctx, `SELECT `+materialColumns+materialFrom+` WHERE m.id = ANY($1) ORDER BY m.created_at DESC`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMaterials(rows)
}

func (r *materialRepository) List(ctx context.Context, filter model.CatalogFilter) (model.Page[model.Material], error) {
	cond := &conditions{}
	if filter.Search != "" {
		cond.add("material_name ILIKE $%d", containsPattern(filter.Search))
	}

	var (
		page model.Page[model.Material]
		err  error
	)
	if page.Total, page.FilterNum, err = countPage(ctx, r.storage.pool, "materials", cond); err != nil {
		return model.Page[model.Material]{}, err
	}

	joined := &conditions{}
	if filter.Search != "" {
		joined.add("m.material_name ILIKE $%d", containsPattern(filter.Search))
	}
	tail, args := pageClause(joined, "m.created_at", filter.Page)
	rows, err := r.storage.pool.Query(ctx, `SELECT `+materialColumns+materialFrom+` WHERE `+joined.where()+` `+tail, args...)
	if err != nil {
		return model.Page[model.Material]{}, err
	}
	defer rows.Close()

	if page.Items, err = collectMaterials(rows); err != nil {
		return model.Page[model.Material]{}, err
	}
	return page, nil
}

func collectMaterials(rows pgx.Rows) ([]model.Material, error) {
	result := []model.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
