package repo

import (
	"context"

	cache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"userdevice/internal/models"
)

const typeCachePrefix = "devicetype"

type TypeStore struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewTypeStore(db *gorm.DB, c *cache.Cache) *TypeStore {
	return &TypeStore{db: db, cache: c}
}

func (s *TypeStore) Create(ctx context.Context, t *models.DeviceType) (string, error) {
	if err := t.ValidateForCreate(); err != nil {
		return "", err
	}
	t.Type = 0
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return "", classify(err)
	}
	return formatID(t.Type), nil
}

func (s *TypeStore) Query(ctx context.Context, q *models.DeviceTypeQuery) (*models.QueryResponse[models.DeviceType], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	order, err := q.OrderClause()
	if err != nil {
		return nil, err
	}

	filtered := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(&models.DeviceType{})
		if q.Name != nil {
			tx = tx.Where("name = ?", *q.Name)
		}
		if q.Modelname != nil {
			tx = tx.Where("modelname = ?", *q.Modelname)
		}
		if q.Manufacturer != nil {
			tx = tx.Where("manufacturer = ?", *q.Manufacturer)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, classify(err)
	}

	types := make([]models.DeviceType, 0)
	if err := filtered().Order(order).Limit(q.Limit).Offset(q.Offset).Find(&types).Error; err != nil {
		return nil, classify(err)
	}
	return &models.QueryResponse[models.DeviceType]{Total: total, Results: types}, nil
}

func (s *TypeStore) Get(ctx context.Context, id string) (*models.DeviceType, error) {
	typeID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if v, ok := s.cache.Get(cacheKey(typeCachePrefix, typeID)); ok {
		if t, ok := v.(*models.DeviceType); ok {
			return t, nil
		}
	}
	var t models.DeviceType
	if err := s.db.WithContext(ctx).First(&t, typeID).Error; err != nil {
		return nil, classify(err)
	}
	s.cache.SetDefault(cacheKey(typeCachePrefix, typeID), &t)
	return &t, nil
}

func (s *TypeStore) Update(ctx context.Context, id string, p *models.DeviceTypePatch) error {
	typeID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.DeviceType
		if err := tx.First(&t, typeID).Error; err != nil {
			return err
		}
		if p.Name != nil {
			t.Name = *p.Name
		}
		if p.Description != nil {
			t.Description = *p.Description
		}
		if p.Modelname != nil {
			t.Modelname = *p.Modelname
		}
		if p.Manufacturer != nil {
			t.Manufacturer = *p.Manufacturer
		}
		return tx.Save(&t).Error
	})
	if err != nil {
		return classify(err)
	}
	s.cache.Delete(cacheKey(typeCachePrefix, typeID))
	return nil
}

func (s *TypeStore) Delete(ctx context.Context, id string) error {
	typeID, err := parseID(id)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.DeviceType{}, typeID)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	s.cache.Delete(cacheKey(typeCachePrefix, typeID))
	return nil
}
