package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"userdevice/internal/models"
)

// BindingStore — create/read/delete для связок пользователь↔устройство.
// Кэша нет: записи мелкие, а get почти всегда идёт с джойном устройства.
type BindingStore struct {
	db *gorm.DB
}

func NewBindingStore(db *gorm.DB) *BindingStore {
	return &BindingStore{db: db}
}

// Create сохраняет связку и штампует boundAt. Дубликат пары — ErrExists,
// несуществующий пользователь/устройство — ErrRefNotExist (по FK).
func (s *BindingStore) Create(ctx context.Context, req *models.BindingRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	userID, err := parseID(req.UserID)
	if err != nil {
		return "", err
	}
	deviceID, err := parseID(req.DeviceID)
	if err != nil {
		return "", err
	}
	b := models.Binding{
		UserID:   userID,
		DeviceID: deviceID,
		BoundAt:  time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&b).Error; err != nil {
		return "", classify(err)
	}
	return formatID(b.ID), nil
}

// Query возвращает конверт {total, results}. При AttachDevice устройство
// жадно подгружается в каждый результат; счётчик джойн не делает.
func (s *BindingStore) Query(ctx context.Context, q *models.BindingQuery) (*models.QueryResponse[models.Binding], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	order, err := q.OrderClause()
	if err != nil {
		return nil, err
	}

	filtered := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(&models.Binding{})
		if q.UserID != nil {
			tx = tx.Where("user_id = ?", *q.UserID)
		}
		if q.DeviceID != nil {
			tx = tx.Where("device_id = ?", *q.DeviceID)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, classify(err)
	}

	page := filtered().Order(order).Limit(q.Limit).Offset(q.Offset)
	if q.AttachDevice {
		page = page.Preload("Device")
	}
	bindings := make([]models.Binding, 0)
	if err := page.Find(&bindings).Error; err != nil {
		return nil, classify(err)
	}
	return &models.QueryResponse[models.Binding]{Total: total, Results: bindings}, nil
}

// Get читает связку по id, всегда вместе с устройством.
func (s *BindingStore) Get(ctx context.Context, id string) (*models.Binding, error) {
	bindingID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var b models.Binding
	if err := s.db.WithContext(ctx).Preload("Device").First(&b, bindingID).Error; err != nil {
		return nil, classify(err)
	}
	return &b, nil
}

func (s *BindingStore) Delete(ctx context.Context, id string) error {
	bindingID, err := parseID(id)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.Binding{}, bindingID)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
