package repo

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"userdevice/internal/models"
)

const deviceCachePrefix = "device"

type DeviceStore struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDeviceStore(db *gorm.DB, c *cache.Cache) *DeviceStore {
	return &DeviceStore{db: db, cache: c}
}

// Create сохраняет новое устройство. MAC нормализуется до записи;
// дубликат mac — ErrExists, несуществующий тип — ErrRefNotExist (по FK).
func (s *DeviceStore) Create(ctx context.Context, d *models.Device) (string, error) {
	if err := d.ValidateForCreate(); err != nil {
		return "", err
	}
	now := time.Now().UTC()
	d.ID = 0
	d.MAC = models.NormalizeMAC(d.MAC)
	d.CreatedAt = now
	d.UpdatedAt = now
	d.DeviceType = nil
	if err := s.db.WithContext(ctx).Create(d).Error; err != nil {
		return "", classify(err)
	}
	return formatID(d.ID), nil
}

func (s *DeviceStore) Query(ctx context.Context, q *models.DeviceQuery) (*models.QueryResponse[models.Device], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	order, err := q.OrderClause()
	if err != nil {
		return nil, err
	}

	filtered := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(&models.Device{})
		if q.MAC != nil {
			tx = tx.Where("mac = ?", models.NormalizeMAC(*q.MAC))
		}
		if q.Name != nil {
			tx = tx.Where("name = ?", *q.Name)
		}
		if q.Type != nil {
			tx = tx.Where("type = ?", *q.Type)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, classify(err)
	}

	devices := make([]models.Device, 0)
	if err := filtered().Order(order).Limit(q.Limit).Offset(q.Offset).Find(&devices).Error; err != nil {
		return nil, classify(err)
	}
	return &models.QueryResponse[models.Device]{Total: total, Results: devices}, nil
}

func (s *DeviceStore) Get(ctx context.Context, id string) (*models.Device, error) {
	deviceID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if v, ok := s.cache.Get(cacheKey(deviceCachePrefix, deviceID)); ok {
		if d, ok := v.(*models.Device); ok {
			return d, nil
		}
	}
	var d models.Device
	if err := s.db.WithContext(ctx).First(&d, deviceID).Error; err != nil {
		return nil, classify(err)
	}
	s.cache.SetDefault(cacheKey(deviceCachePrefix, deviceID), &d)
	return &d, nil
}

// Update — merge-обновление в одной транзакции; новый mac нормализуется.
func (s *DeviceStore) Update(ctx context.Context, id string, p *models.DevicePatch) error {
	deviceID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Device
		if err := tx.First(&d, deviceID).Error; err != nil {
			return err
		}
		if p.Type != nil {
			d.Type = *p.Type
		}
		if p.Name != nil {
			d.Name = *p.Name
		}
		if p.MAC != nil {
			d.MAC = models.NormalizeMAC(*p.MAC)
		}
		if p.PinCode != nil {
			d.PinCode = *p.PinCode
		}
		d.UpdatedAt = time.Now().UTC()
		return tx.Save(&d).Error
	})
	if err != nil {
		return classify(err)
	}
	s.cache.Delete(cacheKey(deviceCachePrefix, deviceID))
	return nil
}

func (s *DeviceStore) Delete(ctx context.Context, id string) error {
	deviceID, err := parseID(id)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.Device{}, deviceID)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	s.cache.Delete(cacheKey(deviceCachePrefix, deviceID))
	return nil
}
