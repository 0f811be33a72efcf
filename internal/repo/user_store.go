package repo

import (
	"context"
	"time"

	cache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"userdevice/internal/models"
)

const userCachePrefix = "user"

type UserStore struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewUserStore(db *gorm.DB, c *cache.Cache) *UserStore {
	return &UserStore{db: db, cache: c}
}

// Create сохраняет нового пользователя и возвращает строковый id.
func (s *UserStore) Create(ctx context.Context, u *models.User) (string, error) {
	if err := u.ValidateForCreate(); err != nil {
		return "", err
	}
	now := time.Now().UTC()
	u.ID = 0
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return "", classify(err)
	}
	return formatID(u.ID), nil
}

// Query возвращает конверт {total, results}. Счётчик считается без
// пагинации, страница — с ORDER BY/LIMIT/OFFSET.
func (s *UserStore) Query(ctx context.Context, q *models.UserQuery) (*models.QueryResponse[models.User], error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	order, err := q.OrderClause()
	if err != nil {
		return nil, err
	}

	filtered := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(&models.User{})
		if q.Name != nil {
			tx = tx.Where("name = ?", *q.Name)
		}
		if q.Email != nil {
			tx = tx.Where("email = ?", *q.Email)
		}
		if q.Enabled != nil {
			tx = tx.Where("enabled = ?", *q.Enabled)
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, classify(err)
	}

	users := make([]models.User, 0)
	if err := filtered().Order(order).Limit(q.Limit).Offset(q.Offset).Find(&users).Error; err != nil {
		return nil, classify(err)
	}
	return &models.QueryResponse[models.User]{Total: total, Results: users}, nil
}

// Get читает пользователя по id через кэш.
func (s *UserStore) Get(ctx context.Context, id string) (*models.User, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if v, ok := s.cache.Get(cacheKey(userCachePrefix, userID)); ok {
		if u, ok := v.(*models.User); ok {
			return u, nil
		}
	}
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		return nil, classify(err)
	}
	s.cache.SetDefault(cacheKey(userCachePrefix, userID), &u)
	return &u, nil
}

// Update выполняет merge-обновление: читает запись, накладывает только
// присутствующие поля, штампует updatedAt — всё в одной транзакции.
func (s *UserStore) Update(ctx context.Context, id string, p *models.UserPatch) error {
	userID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, userID).Error; err != nil {
			return err
		}
		if p.Name != nil {
			u.Name = *p.Name
		}
		if p.Email != nil {
			u.Email = *p.Email
		}
		if p.Password != nil {
			u.Password = *p.Password
		}
		if p.Enabled != nil {
			u.Enabled = *p.Enabled
		}
		u.UpdatedAt = time.Now().UTC()
		return tx.Save(&u).Error
	})
	if err != nil {
		return classify(err)
	}
	s.cache.Delete(cacheKey(userCachePrefix, userID))
	return nil
}

// Delete жёстко удаляет пользователя; отсутствующий id — ErrNotFound.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	userID, err := parseID(id)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.User{}, userID)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	s.cache.Delete(cacheKey(userCachePrefix, userID))
	return nil
}
