package repo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"userdevice/internal/models"
)

// seedUserAndDevice готовит связываемую пару, возвращает строковые id.
func seedUserAndDevice(t *testing.T, db *gorm.DB) (string, string) {
	t.Helper()
	ctx := context.Background()
	c := testCache()

	userID, err := NewUserStore(db, c).Create(ctx, validUser("owner@example.com"))
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	typeID := seedDeviceType(t, db)
	deviceID, err := NewDeviceStore(db, c).Create(ctx, validDevice(typeID, "aabbccddeeff"))
	if err != nil {
		t.Fatalf("seed device: %v", err)
	}
	return userID, deviceID
}

func TestBindingStoreCreateGet(t *testing.T) {
	db := testDB(t)
	s := NewBindingStore(db)
	ctx := context.Background()
	userID, deviceID := seedUserAndDevice(t, db)

	id, err := s.Create(ctx, &models.BindingRequest{UserID: userID, DeviceID: deviceID})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if b.BoundAt.IsZero() {
		t.Error("BoundAt not stamped")
	}
	if b.Device == nil || b.Device.MAC != "aabbccddeeff" {
		t.Errorf("Get() device = %+v, want eager-loaded device", b.Device)
	}
}

func TestBindingStoreCreateErrors(t *testing.T) {
	db := testDB(t)
	s := NewBindingStore(db)
	ctx := context.Background()
	userID, deviceID := seedUserAndDevice(t, db)

	t.Run("missing ids", func(t *testing.T) {
		_, err := s.Create(ctx, &models.BindingRequest{})
		if !errors.Is(err, models.ErrInvalid) {
			t.Errorf("Create() error = %v, want ErrInvalid", err)
		}
	})
	t.Run("non-numeric id", func(t *testing.T) {
		_, err := s.Create(ctx, &models.BindingRequest{UserID: "abc", DeviceID: deviceID})
		if !errors.Is(err, models.ErrInvalid) {
			t.Errorf("Create() error = %v, want ErrInvalid", err)
		}
	})
	t.Run("unknown user", func(t *testing.T) {
		_, err := s.Create(ctx, &models.BindingRequest{UserID: "9999", DeviceID: deviceID})
		if !errors.Is(err, models.ErrRefNotExist) {
			t.Errorf("Create() error = %v, want ErrRefNotExist", err)
		}
	})
	t.Run("duplicate pair", func(t *testing.T) {
		req := &models.BindingRequest{UserID: userID, DeviceID: deviceID}
		if _, err := s.Create(ctx, req); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if _, err := s.Create(ctx, req); !errors.Is(err, models.ErrExists) {
			t.Errorf("Create() duplicate error = %v, want ErrExists", err)
		}
	})
}

func TestBindingStoreQuery(t *testing.T) {
	db := testDB(t)
	s := NewBindingStore(db)
	ctx := context.Background()
	userID, deviceID := seedUserAndDevice(t, db)

	if _, err := s.Create(ctx, &models.BindingRequest{UserID: userID, DeviceID: deviceID}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("plain results carry no device", func(t *testing.T) {
		resp, err := s.Query(ctx, &models.BindingQuery{
			Page: models.Page{Offset: 0, Limit: 10},
		})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if resp.Total != 1 || len(resp.Results) != 1 {
			t.Fatalf("Total = %d len = %d, want 1/1", resp.Total, len(resp.Results))
		}
		if resp.Results[0].Device != nil {
			t.Error("Device attached without the attach flag")
		}
	})

	t.Run("attach loads device", func(t *testing.T) {
		resp, err := s.Query(ctx, &models.BindingQuery{
			Page:         models.Page{Offset: 0, Limit: 10},
			AttachDevice: true,
		})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(resp.Results) != 1 || resp.Results[0].Device == nil {
			t.Fatal("Device not attached")
		}
		if resp.Results[0].Device.MAC != "aabbccddeeff" {
			t.Errorf("Device.MAC = %s, want aabbccddeeff", resp.Results[0].Device.MAC)
		}
	})

	t.Run("filter by user", func(t *testing.T) {
		resp, err := s.Query(ctx, &models.BindingQuery{
			Page:   models.Page{Offset: 0, Limit: 10},
			UserID: uintPtr(9999),
		})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if resp.Total != 0 {
			t.Errorf("Total = %d, want 0 for unmatched user filter", resp.Total)
		}
	})
}

func TestBindingStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewBindingStore(db)
	ctx := context.Background()
	userID, deviceID := seedUserAndDevice(t, db)

	id, err := s.Create(ctx, &models.BindingRequest{UserID: userID, DeviceID: deviceID})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Delete(ctx, id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, id); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, id); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Delete() repeat error = %v, want ErrNotFound", err)
	}
}
